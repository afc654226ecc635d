package main

import (
	"bufio"
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	"github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/basebase-ai/basebase-go/auth"
	"github.com/basebase-ai/basebase-go/directory"
	"github.com/basebase-ai/basebase-go/directory/rediscache"
	"github.com/basebase-ai/basebase-go/internal/config"
	"github.com/basebase-ai/basebase-go/internal/utils"
	"github.com/basebase-ai/basebase-go/platform"
	"github.com/basebase-ai/basebase-go/provision"
	"github.com/basebase-ai/basebase-go/session"
	"github.com/basebase-ai/basebase-go/session/sessionrepo"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Recovered from panic: %v\n", r)
			debug.PrintStack()
			os.Exit(2)
		}
	}()

	_ = godotenv.Load()
	c := config.New()

	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	if c.GetEnv() == "DEV" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		zlog.Logger = zlog.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	if err := rootCmd(c).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app wires the platform client, session store and flows together for one
// command invocation.
type app struct {
	cfg   config.Config
	store *session.Store
	flow  *auth.Flow
	dir   *directory.Directory
	orch  *provision.Orchestrator
}

func newApp(c config.Config) (*app, error) {
	store, err := session.NewStore(sessionrepo.NewFileRepo(c.GetDataFolder()))
	if err != nil {
		return nil, err
	}

	client := platform.NewClient(
		c.GetAPIBaseURL(),
		platform.WithSessionStore(store),
		platform.WithTimeout(c.GetRequestTimeout()),
	)

	flow, err := auth.NewFlow(client, store)
	if err != nil {
		return nil, err
	}

	var dirOptions []directory.Option
	if addr := c.GetRedisAddr(); addr != "" {
		cache, err := rediscache.New(
			redis.NewClient(&redis.Options{Addr: addr}),
			rediscache.WithTTL(c.GetDirectoryCacheTTL()),
		)
		if err != nil {
			return nil, err
		}
		dirOptions = append(dirOptions, directory.WithCache(cache))
	}
	dir, err := directory.New(client, dirOptions...)
	if err != nil {
		return nil, err
	}

	orch, err := provision.New(client, store,
		provision.WithEditorBaseURL(c.GetEditorBaseURL()),
		provision.WithProgress(func(msg string) { fmt.Println(msg) }),
	)
	if err != nil {
		return nil, err
	}

	return &app{cfg: c, store: store, flow: flow, dir: dir, orch: orch}, nil
}

func rootCmd(c config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "basebase",
		Short:         "Sign in, explore and provision BaseBase community apps",
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, _ []string) {
			displayAppName(c.GetAppName())
			_ = cmd.Help()
		},
	}

	cmd.AddCommand(loginCmd(c))
	cmd.AddCommand(signOutCmd(c))
	cmd.AddCommand(whoamiCmd(c))
	cmd.AddCommand(projectsCmd(c))
	cmd.AddCommand(createCmd(c))
	cmd.AddCommand(editCmd(c))
	return cmd
}

func loginCmd(c config.Config) *cobra.Command {
	var username, phone, projectID string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with a one-time code sent to your phone",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(c)
			if err != nil {
				return err
			}
			if a.flow.State() == auth.StateAuthenticated {
				fmt.Println("Already signed in; run `basebase signout` first.")
				return nil
			}

			if err := a.flow.RequestCode(cmd.Context(), username, phone); err != nil {
				return err
			}

			fmt.Printf("Enter the verification code sent to %s: ", phone)
			reader := bufio.NewReader(cmd.InOrStdin())
			code, err := reader.ReadString('\n')
			if err != nil {
				return err
			}

			if projectID == "" {
				projectID = c.GetDefaultProjectID()
			}
			if err := a.flow.VerifyCode(cmd.Context(), phone, strings.TrimSpace(code), projectID); err != nil {
				return err
			}

			sess := a.store.Get()
			fmt.Printf("Signed in as %s\n", sess.User.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "username (letters, numbers and underscores)")
	cmd.Flags().StringVarP(&phone, "phone", "p", "", "phone number including country code")
	cmd.Flags().StringVar(&projectID, "project", "", "project scope for the session token")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("phone")
	return cmd
}

func signOutCmd(c config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "signout",
		Short: "Clear the local session",
		RunE: func(_ *cobra.Command, _ []string) error {
			a, err := newApp(c)
			if err != nil {
				return err
			}
			if a.flow.State() != auth.StateAuthenticated {
				fmt.Println("Not signed in.")
				return nil
			}
			if err := a.flow.SignOut(); err != nil {
				return err
			}
			fmt.Println("Signed out.")
			return nil
		},
	}
}

func whoamiCmd(c config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(_ *cobra.Command, _ []string) error {
			a, err := newApp(c)
			if err != nil {
				return err
			}
			sess := a.store.Get()
			if !sess.IsAuthenticated {
				fmt.Println("Not signed in.")
				return nil
			}
			user := utils.Value(sess.User)
			fmt.Printf("%s (%s)\n", user.Name, user.Phone)
			return nil
		},
	}
}

func projectsCmd(c config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "projects [query]",
		Short: "List and search published community apps",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(c)
			if err != nil {
				return err
			}
			records, err := a.dir.Fetch(cmd.Context(), 0)
			if err != nil {
				return err
			}

			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			matches := directory.Search(records, query)
			if len(matches) == 0 {
				fmt.Println("No matching apps.")
				return nil
			}

			sess := a.store.Get()
			for _, rec := range matches {
				marker := " "
				if directory.CanEdit(rec, sess) {
					marker = "*"
				}
				categories := strings.Join(rec.DisplayCategories(), ", ")
				fmt.Printf("%s %-24s %6d users %5d forks  %s\n", marker, rec.Name, rec.Users, rec.Forks, categories)
				fmt.Printf("    %s\n", rec.Description)
			}
			return nil
		},
	}
}

func createCmd(c config.Config) *cobra.Command {
	var name, projectID, description, categories string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new app (document, repository and deployment)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(c)
			if err != nil {
				return err
			}
			if projectID == "" {
				projectID = provision.Slugify(name)
			}

			req := provision.Request{
				ProjectID:   projectID,
				Name:        name,
				Description: description,
				Categories:  provision.ParseCategories(categories),
			}
			result, err := a.orch.Provision(cmd.Context(), req, provision.ModeCreate)
			if err != nil {
				return err
			}
			a.dir.Invalidate(cmd.Context())

			fmt.Println("Your new app is ready!")
			fmt.Printf("  Editor:     %s\n", result.EditorURL)
			fmt.Printf("  Repository: %s\n", result.RepositoryURL)
			fmt.Printf("  Deployment: %s (in progress, may take a few minutes)\n", result.DeploymentURL)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "display name for the app")
	cmd.Flags().StringVar(&projectID, "id", "", "project id (defaults to a slug of the name)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "what the app does")
	cmd.Flags().StringVar(&categories, "categories", "", "comma-separated categories")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("description")
	return cmd
}

func editCmd(c config.Config) *cobra.Command {
	var name, projectID, description, categories string

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Update an existing app's document",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(c)
			if err != nil {
				return err
			}

			req := provision.Request{
				ProjectID:   projectID,
				Name:        name,
				Description: description,
				Categories:  provision.ParseCategories(categories),
			}
			result, err := a.orch.Provision(cmd.Context(), req, provision.ModeEdit)
			if err != nil {
				return err
			}
			a.dir.Invalidate(cmd.Context())

			fmt.Printf("Updated. Editor: %s\n", result.EditorURL)
			return nil
		},
	}

	cmd.Flags().StringVar(&projectID, "id", "", "project id of the app to update")
	cmd.Flags().StringVarP(&name, "name", "n", "", "display name for the app")
	cmd.Flags().StringVarP(&description, "description", "d", "", "what the app does")
	cmd.Flags().StringVar(&categories, "categories", "", "comma-separated categories")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("description")
	return cmd
}

func displayAppName(appName string) {
	myFigure := figure.NewFigure(appName, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
