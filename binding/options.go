package binding

import (
	"fmt"

	"github.com/arloliu/packbuf/internal/options"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type binderConfig struct {
	label  string
	usage  Usage
	logger *zap.Logger
}

func newBinderConfig() *binderConfig {
	return &binderConfig{
		label: "packbuf-" + uuid.NewString(),
		usage: UsageVertex,
	}
}

// BinderOption configures a Binder.
type BinderOption = options.Option[*binderConfig]

// WithLabel sets the debug label of the device buffer. The default is "packbuf-"
// followed by a random UUID.
func WithLabel(label string) BinderOption {
	return options.New(func(c *binderConfig) error {
		if label == "" {
			return fmt.Errorf("invalid binder label: empty")
		}
		c.label = label

		return nil
	})
}

// WithUsage sets the device buffer usage. The default is UsageVertex.
func WithUsage(u Usage) BinderOption {
	return options.New(func(c *binderConfig) error {
		if u != UsageVertex && u != UsageIndex {
			return fmt.Errorf("invalid binder usage: %d", u)
		}
		c.usage = u

		return nil
	})
}

// WithLogger sets the logger used for upload events.
func WithLogger(l *zap.Logger) BinderOption {
	return options.NoError(func(c *binderConfig) {
		c.logger = l
	})
}
