package logger

import (
	"log"
	"os"
)

// New returns a printf-style logger for libraries that do not take slog,
// writing to stderr with a "newsplatter/<component>" prefix.
func New(component string) *log.Logger {
	return log.New(os.Stderr, "newsplatter/"+component+" ", log.LstdFlags|log.LUTC|log.Lmsgprefix)
}
