package popup

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/vectorshift/integrations-cli/internal/core/domain"
	"github.com/vectorshift/integrations-cli/internal/core/ports/driven"
	"github.com/vectorshift/integrations-cli/internal/logger"
)

// Ensure CommandOpener implements the interface.
var _ driven.PopupOpener = (*CommandOpener)(nil)

// urlPlaceholder is replaced by the authorization URL in a popup command.
const urlPlaceholder = "{url}"

// CommandOpener runs a foreground program, such as a browser started with
// its own window, and treats the program exiting as the window closing.
type CommandOpener struct {
	name string
	args []string
}

// NewCommandOpener parses command into a program and arguments. The command
// is split on whitespace; {url} marks where the URL goes, otherwise it is
// appended.
func NewCommandOpener(command string) (*CommandOpener, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: popup command is empty", domain.ErrInvalidInput)
	}
	return &CommandOpener{name: fields[0], args: fields[1:]}, nil
}

// Open starts the program. Failing to start it means the popup was blocked.
func (o *CommandOpener) Open(_ context.Context, url, title string) (domain.PopupWindow, error) {
	cmd := exec.Command(o.name, o.expandArgs(url)...) //nolint:gosec // command comes from user config

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", o.name, err)
	}
	logger.Debug("popup: %s started for %q (pid %d)", o.name, title, cmd.Process.Pid)

	w := newWindow(url, func() error {
		err := cmd.Process.Kill()
		if errors.Is(err, os.ErrProcessDone) {
			return nil
		}
		return err
	})
	go func() {
		err := cmd.Wait()
		logger.Debug("popup: %s exited: %v", o.name, err)
		w.markClosed()
	}()
	return w, nil
}

func (o *CommandOpener) expandArgs(url string) []string {
	args := make([]string, 0, len(o.args)+1)
	substituted := false
	for _, arg := range o.args {
		if strings.Contains(arg, urlPlaceholder) {
			arg = strings.ReplaceAll(arg, urlPlaceholder, url)
			substituted = true
		}
		args = append(args, arg)
	}
	if !substituted {
		args = append(args, url)
	}
	return args
}
