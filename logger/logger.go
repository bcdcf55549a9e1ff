// logger/logger.go
package logger

import (
	"go.uber.org/zap"
)

// Log 进程级日志器。main 启动时 Init 一次，之后各包直接使用。
var Log *zap.SugaredLogger

func Init() {
	base, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize zap logger: " + err.Error())
	}
	Log = base.Sugar()
}
