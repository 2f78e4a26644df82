package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/gophtasks/internal/client/client"
	"github.com/dmitrijs2005/gophtasks/internal/client/config"
)

// API is the part of the HTTP client the commands use.
type API interface {
	Login(ctx context.Context, username, password string) (string, error)
	CurrentUser(ctx context.Context, token string) (*client.Identity, error)
	ListTasks(ctx context.Context, token string) ([]client.Task, error)
	CreateTask(ctx context.Context, token, title string, description *string, status string) (*client.Task, error)
	UpdateTaskStatus(ctx context.Context, token string, id int64, status string) (*client.Task, error)
	DeleteTask(ctx context.Context, token string, id int64) error
}

type session struct {
	configFile string
	serverURL  string
	tokenFile  string

	cfg    *config.Config
	api    API
	tokens *client.TokenStore
}

// NewRootCmd creates the root command for the gophtasks CLI.
func NewRootCmd() *cobra.Command {
	s := &session{}

	cmd := &cobra.Command{
		Use:           "gophtasks",
		Short:         "gophtasks - manage your tasks from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return s.load(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&s.configFile, "config", "", "config file path")
	cmd.PersistentFlags().StringVar(&s.serverURL, "server", "", "API base URL")
	cmd.PersistentFlags().StringVar(&s.tokenFile, "token-file", "", "where the access token is stored")

	cmd.AddCommand(newLoginCmd(s))
	cmd.AddCommand(newLogoutCmd(s))
	cmd.AddCommand(newWhoamiCmd(s))
	cmd.AddCommand(newTasksCmd(s))

	return cmd
}

func (s *session) load(cmd *cobra.Command) error {
	cfg, err := config.Load(s.configFile, os.LookupEnv)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("server") {
		cfg.ServerURL = s.serverURL
	}
	if cmd.Flags().Changed("token-file") {
		cfg.TokenFile = s.tokenFile
	}

	s.cfg = cfg
	s.api = client.NewHTTPClient(cfg.ServerURL, cfg.Timeout)
	s.tokens = client.NewTokenStore(cfg.TokenFile)
	return nil
}
