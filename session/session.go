package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pkg/errors"
	"perceptron/common"
	"perceptron/core/config"
	"perceptron/core/dataset"
	"perceptron/core/ml"
	"perceptron/core/msgbus"
)

// Result 训练完成后交给调用方的模型
type Result struct {
	Form           ml.Form
	W              []float64
	Bias           float64
	Alpha          []float64 // 仅对偶形式
	Passes         int
	Updates        int
	DecisionValues []float64
	Margins        []float64
}

func newResult(t ml.Trainer, set *ml.SampleSet) *Result {
	res := &Result{
		Form:           t.Form(),
		W:              t.W(),
		Bias:           t.Bias(),
		Passes:         t.Passes(),
		Updates:        t.Updates(),
		DecisionValues: ml.DecisionValues(t, set),
		Margins:        ml.Margins(t, set),
	}
	if d, ok := t.(*ml.Dual); ok {
		res.Alpha = d.Alpha()
	}
	return res
}

type Session struct {
	runID   string
	conf    *config.LocalConfig
	set     *ml.SampleSet
	trainer ml.Trainer
	msgBus  msgbus.MessageBus
	history *historySubscriber
	log     common.Logger
}

// Init 依次初始化日志、消息总线、训练集与训练器
// 失败时已创建的消息总线会被停止
func (s *Session) Init(c *config.LocalConfig) (err error) {
	s.conf = c
	defer func() {
		if err != nil {
			s.Close()
		}
	}()

	logConfig, err := c.LogConfig()
	if err != nil {
		return errors.Wrap(err, "get log config")
	}
	common.SetLogConfig(logConfig)
	s.log = common.GetLogger(common.MODULE_SESSION)

	//在训练器初始化之前，初始化messagebus
	s.msgBus = msgbus.NewMessageBus(common.GetLogger(common.MODULE_MSGBUS))
	s.history = &historySubscriber{}
	s.msgBus.Register(common.TrainMsg, s.history)
	s.msgBus.Register(common.TrainMsg, &reportSubscriber{log: s.log})

	s.set, err = dataset.Load(&c.Dataset)
	if err != nil {
		return errors.Wrap(err, "load dataset")
	}

	form, opts, err := c.TrainOptions()
	if err != nil {
		return errors.Wrap(err, "train options")
	}
	s.runID = fmt.Sprintf("%s-%d", form, time.Now().UnixNano())
	opts = append(opts,
		ml.WithLogger(common.GetLogger(common.MODULE_TRAINER)),
		ml.WithObserver(func(ev ml.UpdateEvent) {
			s.msgBus.Publish(s.runID, common.TrainMsg_Update, ev)
		}),
	)
	s.trainer, err = ml.NewTrainer(form, s.set, opts...)
	if err != nil {
		return errors.Wrap(err, "new trainer")
	}
	return nil
}

func (s *Session) Run(ctx context.Context) (*Result, error) {
	s.log.Infof("run[%s] start training on %d samples", s.runID, s.set.Len())
	defer s.msgBus.Flush()

	if err := s.trainer.Train(ctx); err != nil {
		s.msgBus.Publish(s.runID, common.TrainMsg_Failed, err)
		return nil, err
	}

	res := newResult(s.trainer, s.set)
	s.msgBus.Publish(s.runID, common.TrainMsg_Converged, res)
	return res, nil
}

// Close 停止消息总线，之后Session不可再用
func (s *Session) Close() {
	if s.msgBus != nil {
		s.msgBus.Flush()
		s.msgBus.Reset()
	}
}

func (s *Session) SampleSet() *ml.SampleSet {
	return s.set
}

func (s *Session) Trainer() ml.Trainer {
	return s.trainer
}

// History 已处理的更新事件
func (s *Session) History() []ml.UpdateEvent {
	s.msgBus.Flush()
	return s.history.events()
}

type historySubscriber struct {
	mutex sync.Mutex
	evs   []ml.UpdateEvent
}

func (h *historySubscriber) HandleMsgFromMsgBus(msg *msgbus.BusMessage) error {
	if msg.MsgType != common.TrainMsg_Update {
		return nil
	}
	ev, ok := msg.Msg.(ml.UpdateEvent)
	if !ok {
		return errors.Errorf("unexpected payload %T", msg.Msg)
	}
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.evs = append(h.evs, ev)
	return nil
}

func (h *historySubscriber) events() []ml.UpdateEvent {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return append([]ml.UpdateEvent(nil), h.evs...)
}

type reportSubscriber struct {
	log common.Logger
}

func (r *reportSubscriber) HandleMsgFromMsgBus(msg *msgbus.BusMessage) error {
	switch msg.MsgType {
	case common.TrainMsg_Update:
		ev := msg.Msg.(ml.UpdateEvent)
		r.log.Infof("run[%s] pass %d sample %d weight:%v bias:%v", msg.RunID, ev.Pass, ev.Index, ev.W, ev.Bias)
	case common.TrainMsg_Converged:
		res := msg.Msg.(*Result)
		r.log.Infof("run[%s] converged, weight:%v bias:%v passes:%d", msg.RunID, res.W, res.Bias, res.Passes)
	case common.TrainMsg_Failed:
		r.log.Errorf("run[%s] failed: %s", msg.RunID, msg.Msg)
	}
	return nil
}
