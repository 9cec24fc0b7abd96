package common

import (
	"log"
	"os"
	"sync"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// 日志级别，int类型，内部接口使用常量
type LOG_LEVEL int

const (
	LEVEL_DEBUG LOG_LEVEL = iota
	LEVEL_INFO
	LEVEL_WARN
	LEVEL_ERROR
)

var (
	LOG_LEVEL_Name = map[LOG_LEVEL]string{
		LEVEL_DEBUG: "DEBUG",
		LEVEL_INFO:  "INFO",
		LEVEL_WARN:  "WARN",
		LEVEL_ERROR: "ERROR",
	}
	LOG_LEVEL_Value = map[string]LOG_LEVEL{
		"DEBUG": LEVEL_DEBUG,
		"INFO":  LEVEL_INFO,
		"WARN":  LEVEL_WARN,
		"ERROR": LEVEL_ERROR,
	}
)

const (
	LOG_MODE_DEV  = "DEV"
	LOG_MODE_PROD = "PROD"
)

type LogConfig struct {
	BriefMode          string
	ModuleSpecialLevel map[string]LOG_LEVEL // 模块特别指定的日志级别

	LogPath        string // 为空时只输出到控制台
	LogLevel       LOG_LEVEL
	RotationMaxAge int // 日志的保存期限，天
	RotationTime   int // 日志rotation的间隔，小时
	RotationSize   int // 日志rotation的大小，MB
	ShowLine       bool
	LogInConsole   bool
}

// 若未设置配置，则按照DEV模式设置
func DefaultLogConfig(isDEV bool) *LogConfig {
	if isDEV {
		return &LogConfig{
			LogPath:        "./perceptron.dev.log",
			LogLevel:       LEVEL_DEBUG,
			RotationMaxAge: 1,
			RotationTime:   1,
			RotationSize:   10,
			ShowLine:       true,
			LogInConsole:   true,
		}
	}

	return &LogConfig{
		LogPath:        "./perceptron.prod.log",
		LogLevel:       LEVEL_INFO,
		RotationMaxAge: 7,
		RotationTime:   24,
		RotationSize:   30,
		ShowLine:       false,
		LogInConsole:   false,
	}
}

func adjustLogConfig(name string, lc *LogConfig) *LogConfig {
	if lc.BriefMode != "" {
		return DefaultLogConfig(lc.BriefMode != LOG_MODE_PROD)
	}

	newC := *lc
	if level, ok := lc.ModuleSpecialLevel[name]; ok {
		newC.LogLevel = level
	}
	return &newC
}

func zapLevelOf(level LOG_LEVEL) zapcore.Level {
	switch level {
	case LEVEL_DEBUG:
		return zap.DebugLevel
	case LEVEL_INFO:
		return zap.InfoLevel
	case LEVEL_WARN:
		return zap.WarnLevel
	case LEVEL_ERROR:
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}

func NewSugaredLogger(name string, lc *LogConfig) *zap.SugaredLogger {
	lcc := adjustLogConfig(name, lc)
	//1.创建level
	zapLevel := zapLevelOf(lcc.LogLevel)
	priorityLevel := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= zapLevel
	})

	//2.创建syncer
	var syncers []zapcore.WriteSyncer
	if lcc.LogInConsole || lcc.LogPath == "" {
		syncers = append(syncers, zapcore.AddSync(os.Stdout))
	}
	if lcc.LogPath != "" {
		rotationWriter, err := rotatelogs.New(
			lcc.LogPath+".%Y%m%d%H",
			rotatelogs.WithRotationTime(time.Duration(lcc.RotationTime)*time.Hour),
			rotatelogs.WithRotationSize(int64(lcc.RotationSize*1024*1024)),
			rotatelogs.WithMaxAge(time.Hour*24*time.Duration(lcc.RotationMaxAge)),
		)
		if err != nil {
			log.Fatalf("new rotation log failed, %s", err)
		}
		syncers = append(syncers, zapcore.AddSync(rotationWriter))
	}
	syncer := zapcore.NewMultiWriteSyncer(syncers...)

	//3.创建encoder
	customLevelEncoder := func(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString("[" + level.CapitalString() + "]")
	}
	customTimeEncoder := func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.Format("2006-01-02 15:04:05.000"))
	}
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "line",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    customLevelEncoder,
		EncodeTime:     customTimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeName:     zapcore.FullNameEncoder,
	}
	encoder := zapcore.NewConsoleEncoder(encoderConfig)
	//4.根据1-3，创建core
	core := zapcore.NewCore(encoder, syncer, priorityLevel)
	//5.创建SugaredLogger
	logger := zap.New(core).Named(name)

	var opts []zap.Option
	if lcc.ShowLine {
		opts = append(opts, zap.AddCaller())
	}
	//logger最终是装载到PerceptronLogger中使用的，因此这里跳过1层调用
	opts = append(opts, zap.AddCallerSkip(1))
	logger = logger.WithOptions(opts...)

	return logger.Sugar()
}

const (
	MODULE_TRAINER = "[Trainer]"
	MODULE_DATASET = "[Dataset]"
	MODULE_SESSION = "[Session]"
	MODULE_MSGBUS  = "[MsgBus]"
)

type Logger interface {
	Debug(args ...interface{})
	Debugf(format string, args ...interface{})
	Info(args ...interface{})
	Infof(format string, args ...interface{})
	Warn(args ...interface{})
	Warnf(format string, args ...interface{})
	Error(args ...interface{})
	Errorf(format string, args ...interface{})
}

type PerceptronLogger struct {
	zlog  *zap.SugaredLogger
	name  string
	mutex sync.RWMutex
}

func (l *PerceptronLogger) Logger() *zap.SugaredLogger {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	return l.zlog
}

func (l *PerceptronLogger) Debug(args ...interface{}) {
	l.Logger().Debug(args...)
}

func (l *PerceptronLogger) Debugf(format string, args ...interface{}) {
	l.Logger().Debugf(format, args...)
}

func (l *PerceptronLogger) Info(args ...interface{}) {
	l.Logger().Info(args...)
}

func (l *PerceptronLogger) Infof(format string, args ...interface{}) {
	l.Logger().Infof(format, args...)
}

func (l *PerceptronLogger) Warn(args ...interface{}) {
	l.Logger().Warn(args...)
}

func (l *PerceptronLogger) Warnf(format string, args ...interface{}) {
	l.Logger().Warnf(format, args...)
}

func (l *PerceptronLogger) Error(args ...interface{}) {
	l.Logger().Error(args...)
}

func (l *PerceptronLogger) Errorf(format string, args ...interface{}) {
	l.Logger().Errorf(format, args...)
}

func (l *PerceptronLogger) SetLogger(logger *zap.SugaredLogger) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.zlog = logger
}

// NopLogger 丢弃所有输出，未指定logger的训练器默认使用
func NopLogger() *PerceptronLogger {
	return &PerceptronLogger{name: "nop", zlog: zap.NewNop().Sugar()}
}

var (
	loggersMap    = make(map[string]*PerceptronLogger)
	loggerMutex   sync.RWMutex
	pcptLogConfig *LogConfig
)

func GetLogger(name string) *PerceptronLogger {
	loggerMutex.Lock()
	defer loggerMutex.Unlock()

	if logger, ok := loggersMap[name]; ok {
		return logger
	}

	if pcptLogConfig == nil {
		pcptLogConfig = DefaultLogConfig(true)
	}

	logger := &PerceptronLogger{
		name: name,
		zlog: NewSugaredLogger(name, pcptLogConfig),
	}
	loggersMap[name] = logger

	return logger
}

// 在获取日志对象之前进行配置设置，已创建的logger会按新配置重建
func SetLogConfig(config *LogConfig) {
	loggerMutex.Lock()
	defer loggerMutex.Unlock()

	pcptLogConfig = config
	for _, logger := range loggersMap {
		logger.SetLogger(NewSugaredLogger(logger.name, pcptLogConfig))
	}
}
