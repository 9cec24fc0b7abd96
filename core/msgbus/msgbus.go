package msgbus

import (
	"sync"
	"sync/atomic"

	"perceptron/common"
)

var defaultTopicSize = 100

type BusMessage struct {
	MsgType common.LocalMsgType
	RunID   string
	Msg     interface{}
}

type Subscriber interface {
	HandleMsgFromMsgBus(msg *BusMessage) error
}

type funcSubscriber struct {
	f func(msg *BusMessage) error
}

func (s *funcSubscriber) HandleMsgFromMsgBus(msg *BusMessage) error {
	return s.f(msg)
}

// SubscriberFunc 以函数作为订阅者，每次调用返回不同的订阅者，注销时须使用同一返回值
func SubscriberFunc(f func(msg *BusMessage) error) Subscriber {
	return &funcSubscriber{f: f}
}

type MessageBus interface {
	Register(topic common.LocalMsgType, sub Subscriber)
	UnRegister(topic common.LocalMsgType, sub Subscriber)
	Publish(runID string, t common.LocalMsgType, payload interface{})
	// Flush 阻塞到此前发布的消息都已被处理
	Flush()
	Reset()
}

type Topic interface {
	Register(sub Subscriber)
	UnRegister(sub Subscriber)
	Publish(msg *BusMessage)
	Flush()
	Stop()
}

type topicImpl struct {
	msgChan chan *BusMessage
	subs    atomic.Value //[]Subscriber
	mutex   sync.RWMutex
	pending sync.WaitGroup
	log     common.Logger

	//stopMutex保证Stop之后不会再有消息进入msgChan
	stopMutex sync.RWMutex
	stopped   bool
	stop      chan struct{}
}

func newTopic(size int, log common.Logger) Topic {
	t := &topicImpl{
		msgChan: make(chan *BusMessage, size),
		stop:    make(chan struct{}),
		log:     log,
	}
	t.subs.Store([]Subscriber{})
	go t.handlePublish()
	return t
}

func (t *topicImpl) Register(sub Subscriber) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	subs := t.subs.Load().([]Subscriber)
	//去重
	for _, s := range subs {
		if s == sub {
			return
		}
	}
	newSubs := make([]Subscriber, 0, len(subs)+1)
	newSubs = append(newSubs, subs...)
	t.subs.Store(append(newSubs, sub))
}

func (t *topicImpl) UnRegister(sub Subscriber) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	subs := t.subs.Load().([]Subscriber)
	for i, s := range subs {
		if s == sub {
			newSubs := make([]Subscriber, 0, len(subs)-1)
			newSubs = append(newSubs, subs[:i]...)
			t.subs.Store(append(newSubs, subs[i+1:]...))
			return
		}
	}
}

// Publish 同一topic内的消息按发布顺序投递
func (t *topicImpl) Publish(msg *BusMessage) {
	t.stopMutex.RLock()
	defer t.stopMutex.RUnlock()
	if t.stopped {
		return
	}
	t.pending.Add(1)
	t.msgChan <- msg
}

func (t *topicImpl) Flush() {
	t.pending.Wait()
}

// Stop 结束协程handlePublish()，未投递的消息被丢弃
func (t *topicImpl) Stop() {
	t.stopMutex.Lock()
	defer t.stopMutex.Unlock()
	if t.stopped {
		return
	}
	t.stopped = true
	close(t.stop)
}

func (t *topicImpl) handlePublish() {
	for {
		select {
		case <-t.stop:
			//释放还在队列中的消息，避免Flush阻塞
			for {
				select {
				case <-t.msgChan:
					t.pending.Done()
				default:
					return
				}
			}
		case msg := <-t.msgChan:
			subs := t.subs.Load().([]Subscriber)
			for _, sub := range subs {
				if err := sub.HandleMsgFromMsgBus(msg); err != nil {
					t.log.Warnf("handle %s msg of run[%s] err: %s", msg.MsgType, msg.RunID, err)
				}
			}
			t.pending.Done()
		}
	}
}

type messageBusImpl struct {
	topics sync.Map //BusMsgType->Topic
	mutex  sync.Mutex
	log    common.Logger
}

// NewMessageBus 创建独立的消息总线，每个训练会话各用一个
func NewMessageBus(log common.Logger) MessageBus {
	if log == nil {
		log = common.NopLogger()
	}
	return &messageBusImpl{log: log}
}

func (mb *messageBusImpl) Register(topic common.LocalMsgType, sub Subscriber) {
	mb.mutex.Lock()
	defer mb.mutex.Unlock()

	firstClassTopic := topic.Type()
	if v, ok := mb.topics.Load(firstClassTopic); ok {
		v.(Topic).Register(sub)
		return
	}
	t := newTopic(defaultTopicSize, mb.log)
	t.Register(sub)
	mb.topics.Store(firstClassTopic, t)
}

func (mb *messageBusImpl) UnRegister(topic common.LocalMsgType, sub Subscriber) {
	firstClassTopic := topic.Type()
	v, ok := mb.topics.Load(firstClassTopic)
	if !ok {
		return
	}
	v.(Topic).UnRegister(sub)
}

func (mb *messageBusImpl) Publish(runID string, topic common.LocalMsgType, msg interface{}) {
	firstClassTopic := topic.Type()
	v, ok := mb.topics.Load(firstClassTopic)
	if !ok {
		mb.log.Debugf("no subscriber of topic[%d] for %s msg", firstClassTopic, topic)
		return
	}
	v.(Topic).Publish(&BusMessage{MsgType: topic, RunID: runID, Msg: msg})
}

func (mb *messageBusImpl) Flush() {
	mb.topics.Range(func(k, v interface{}) bool {
		v.(Topic).Flush()
		return true
	})
}

func (mb *messageBusImpl) Reset() {
	mb.mutex.Lock()
	defer mb.mutex.Unlock()

	mb.topics.Range(func(k, v interface{}) bool {
		v.(Topic).Stop()
		mb.topics.Delete(k)
		return true
	})
}
