package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"mergington/internal/cli/config"
	"mergington/internal/client/api"
	"mergington/internal/client/controller"
	"mergington/internal/client/session"
)

// portalSession builds the controller stack shared by every command.
func portalSession() (*controller.Controller, error) {
	cfg, err := config.Get()
	if err != nil {
		return nil, err
	}
	store, err := session.NewStore()
	if err != nil {
		return nil, fmt.Errorf("locate session store: %w", err)
	}
	return controller.New(cfg.Client(), store), nil
}

// requireIdentity re-verifies the persisted session and returns the identity,
// or a friendly error when there is no usable session.
func requireIdentity(ctx context.Context, ctrl *controller.Controller) (api.Identity, error) {
	id, err := ctrl.Resume(ctx)
	if errors.Is(err, api.ErrSessionInvalid) {
		return api.Identity{}, errors.New("not logged in; run 'portal login' first")
	}
	if err != nil {
		return api.Identity{}, err
	}
	return id, nil
}

// prompt reads one line from stdin when a flag was not supplied.
func prompt(label string) (string, error) {
	fmt.Printf("%s: ", label)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func printSuccess(message string) {
	fmt.Println(successStyle.Render(message))
}

func printError(message string) {
	fmt.Fprintln(os.Stderr, errorStyle.Render(message))
}
