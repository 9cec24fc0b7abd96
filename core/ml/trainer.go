package ml

import (
	"context"
	"math"
	"strings"

	"github.com/pkg/errors"
	"perceptron/common"
)

// Form 感知机学习算法的形式：原始形式或对偶形式
type Form string

const (
	FormPrimal Form = "primal"
	FormDual   Form = "dual"
)

func ParseForm(s string) (Form, error) {
	switch Form(strings.ToLower(strings.TrimSpace(s))) {
	case FormPrimal:
		return FormPrimal, nil
	case FormDual:
		return FormDual, nil
	}
	return "", errors.Wrapf(ErrUnknownForm, "%q", s)
}

type State int

const (
	Training State = iota
	Converged
)

func (s State) String() string {
	if s == Converged {
		return "Converged"
	}
	return "Training"
}

// UpdateEvent 每次以误分类点更新参数之后产生
type UpdateEvent struct {
	Form  Form
	Pass  int // 从1开始的扫描轮数
	Index int // 本轮被修正的实例点
	W     []float64
	Bias  float64
	Alpha []float64 // 仅对偶形式
}

type Observer func(ev UpdateEvent)

// Trainer 原始形式与对偶形式共用的训练约定
type Trainer interface {
	// Train 循环扫描训练集直至没有误分类点
	Train(ctx context.Context) error
	// TrainOnePass 按下标顺序扫描一轮，修正第一个误分类点后返回其下标；
	// 没有误分类点时返回 -1, false
	TrainOnePass() (int, bool)
	HasError(i int) bool
	GradientStep(i int)
	W() []float64
	Bias() float64
	Form() Form
	State() State
	Passes() int
	Updates() int
}

type options struct {
	learningRate float64
	bias         float64
	maxPasses    int
	observer     Observer
	log          common.Logger
}

func defaultOptions() options {
	return options{
		learningRate: 1,
		bias:         0,
		log:          common.NopLogger(),
	}
}

type Option func(*options)

// WithLearningRate 学习率η，须大于0，默认1
func WithLearningRate(eta float64) Option {
	return func(o *options) {
		o.learningRate = eta
	}
}

// WithBias 初始偏置b0，默认0
func WithBias(b float64) Option {
	return func(o *options) {
		o.bias = b
	}
}

// WithMaxPasses 最大扫描轮数（含最后一轮无误分类的扫描），0表示不设上限。
// 不设上限时线性不可分的数据集会使Train永不返回
func WithMaxPasses(n int) Option {
	return func(o *options) {
		o.maxPasses = n
	}
}

func WithObserver(obs Observer) Option {
	return func(o *options) {
		o.observer = obs
	}
}

func WithLogger(l common.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

func buildOptions(opts []Option) (options, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if !(o.learningRate > 0) || math.IsInf(o.learningRate, 0) {
		return o, errors.Wrapf(ErrInvalidDataset, "learning rate %v must be positive", o.learningRate)
	}
	if math.IsNaN(o.bias) || math.IsInf(o.bias, 0) {
		return o, errors.Wrapf(ErrInvalidDataset, "initial bias %v", o.bias)
	}
	if o.maxPasses < 0 {
		return o, errors.Wrapf(ErrInvalidDataset, "max passes %d must not be negative", o.maxPasses)
	}
	return o, nil
}

// stepper 各形式自己的误分类判断与更新规则
type stepper interface {
	HasError(i int) bool
	GradientStep(i int)
	event(pass, index int) UpdateEvent
}

// base 两种形式共享的存储与训练循环
type base struct {
	set     *SampleSet
	opts    options
	form    Form
	bias    float64
	state   State
	passes  int
	updates int
}

func newBase(form Form, set *SampleSet, opts []Option) (base, error) {
	if set == nil || set.Len() == 0 {
		return base{}, errors.Wrap(ErrInvalidDataset, "empty dataset")
	}
	o, err := buildOptions(opts)
	if err != nil {
		return base{}, err
	}
	return base{set: set, opts: o, form: form, bias: o.bias}, nil
}

func (b *base) Bias() float64 {
	return b.bias
}

func (b *base) Form() Form {
	return b.form
}

func (b *base) State() State {
	return b.state
}

func (b *base) Passes() int {
	return b.passes
}

func (b *base) Updates() int {
	return b.updates
}

// margin 误分类判断 y(score+b) <= 0，间隔为0也算误分类
func (b *base) margin(i int, score float64) bool {
	return float64(b.set.data[i].y)*(score+b.bias) <= 0
}

func (b *base) onePass(s stepper) (int, bool) {
	b.passes++
	for i := 0; i < b.set.Len(); i++ {
		if !s.HasError(i) {
			continue
		}
		s.GradientStep(i)
		b.state = Training
		b.updates++

		ev := s.event(b.passes, i)
		b.opts.log.Debugf("[%s] pass %d fix sample %d, weight:%v bias:%v", b.form, ev.Pass, i, ev.W, ev.Bias)
		if b.opts.observer != nil {
			b.opts.observer(ev)
		}
		return i, true
	}
	b.state = Converged
	return -1, false
}

func (b *base) train(ctx context.Context, s stepper) error {
	for {
		if err := ctx.Err(); err != nil {
			return errors.Wrapf(ErrCanceled, "%s after %d passes: %s", b.form, b.passes, err)
		}
		if b.opts.maxPasses > 0 && b.passes >= b.opts.maxPasses {
			b.opts.log.Warnf("[%s] no convergence after %d passes, %d updates", b.form, b.passes, b.updates)
			return errors.Wrapf(ErrNonConvergence, "%s: %d passes, %d updates", b.form, b.passes, b.updates)
		}
		if _, updated := b.onePass(s); !updated {
			ev := s.event(b.passes, -1)
			b.opts.log.Infof("[%s] converged after %d passes, %d updates, weight:%v bias:%v",
				b.form, b.passes, b.updates, ev.W, ev.Bias)
			return nil
		}
	}
}

// NewTrainer 按形式构造训练器
func NewTrainer(form Form, set *SampleSet, opts ...Option) (Trainer, error) {
	switch form {
	case FormPrimal:
		p, err := NewPrimal(set, opts...)
		if err != nil {
			return nil, err
		}
		return p, nil
	case FormDual:
		d, err := NewDual(set, opts...)
		if err != nil {
			return nil, err
		}
		return d, nil
	}
	return nil, errors.Wrapf(ErrUnknownForm, "%q", form)
}
