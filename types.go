package careers

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Logger is the minimal structured logging surface the package needs. Calls
// follow the slog convention: a message followed by key/value pairs. glog
// satisfies it; tests use the default.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Error(msg string, args ...any)
}

// Config holds the auth options the token layer and middleware read.
type Config interface {
	GetSigningKey() string
	GetContextKey() string
	GetTokenExpiration() int
	GetAuthScheme() string
	GetIssuer() string
	GetAudience() []string
}

type defLogger struct {
	out io.Writer
}

func (d defLogger) Error(msg string, args ...any) { d.log("ERR", msg, args) }
func (d defLogger) Info(msg string, args ...any)  { d.log("INF", msg, args) }
func (d defLogger) Debug(msg string, args ...any) { d.log("DBG", msg, args) }

func (d defLogger) log(level, msg string, args []any) {
	out := d.out
	if out == nil {
		out = os.Stdout
	}

	var b strings.Builder
	b.WriteString("[" + level + "] CAREERS " + msg)
	for i := 0; i+1 < len(args); i += 2 {
		fmt.Fprintf(&b, " %v=%v", args[i], args[i+1])
	}
	// dangling key without a value
	if len(args)%2 == 1 {
		fmt.Fprintf(&b, " %v=?", args[len(args)-1])
	}
	b.WriteString("\n")

	fmt.Fprint(out, b.String())
}
