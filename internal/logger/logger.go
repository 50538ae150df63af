package logger

import "go.uber.org/zap"

// Log is a no-op until Init is called.
var Log = zap.NewNop()

func Init(env string) {
	if env == "development" {
		Log = zap.Must(zap.NewDevelopment())
		return
	}
	Log = zap.Must(zap.NewProduction())
}

func Sugar() *zap.SugaredLogger {
	return Log.Sugar()
}
