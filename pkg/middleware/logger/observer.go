package logger

import (
	"reflect"

	"go.uber.org/zap"
)

// DispatchObserver adapts a zap logger to the dispatch registry's observer
// events, keeping the core itself free of any logging dependency.
type DispatchObserver struct {
	Log *zap.Logger
}

func (o DispatchObserver) EntryRegistered(identity reflect.Type, handler string) {
	o.Log.Info("handler registered",
		zap.String("request", identity.String()),
		zap.String("handler", handler),
	)
}

func (o DispatchObserver) AmbiguityDetected(identity reflect.Type, existing, proposed string) {
	o.Log.Error("ambiguous handler binding",
		zap.String("request", identity.String()),
		zap.String("existing", existing),
		zap.String("proposed", proposed),
	)
}
