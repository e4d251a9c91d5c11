// adctl is the terminal admin console for an agentdesk server: log in, manage
// the agent roster, upload contact lists, and inspect how uploads were
// distributed.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/opsdesk/agentdesk/internal/client"
	"github.com/opsdesk/agentdesk/internal/logger"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "adctl",
		Usage: "Admin console for an agentdesk server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "server",
				Aliases: []string{"s"},
				Value:   "http://localhost:8080",
				Usage:   "Base URL of the agentdesk server",
				EnvVars: []string{"AGENTDESK_SERVER"},
			},
			&cli.StringFlag{
				Name:    "session-file",
				Usage:   "Path of the persisted session token",
				EnvVars: []string{"AGENTDESK_SESSION_FILE"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Before: func(c *cli.Context) error {
			logger.Setup(logger.ParseLevel(c.String("log-level")))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "login",
				Usage:     "Log in and persist the session token",
				ArgsUsage: "<email> <password>",
				Action:    runLogin,
			},
			{
				Name:      "register",
				Usage:     "Register an admin account and persist the session token",
				ArgsUsage: "<email> <password>",
				Action:    runRegister,
			},
			{
				Name:   "logout",
				Usage:  "Clear the persisted session token",
				Action: runLogout,
			},
			{
				Name:   "whoami",
				Usage:  "Show the identity behind the current session",
				Action: runWhoami,
			},
			{
				Name:   "agents",
				Usage:  "List the agent roster",
				Action: runAgents,
			},
			{
				Name:      "add-agent",
				Usage:     "Add an agent to the roster",
				ArgsUsage: "<name> <email> <mobile> <password>",
				Action:    runAddAgent,
			},
			{
				Name:  "lists",
				Usage: "Show uploaded lists",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "expand",
						Usage: "List ID to show with full distributions",
					},
				},
				Action: runLists,
			},
			{
				Name:      "upload",
				Usage:     "Upload a CSV/XLSX/XLS file and distribute it across agents",
				ArgsUsage: "<file>",
				Action:    runUpload,
			},
			{
				Name:   "dashboard",
				Usage:  "Show aggregate stats and recent uploads",
				Action: runDashboard,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("command failed", "error", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newClient builds the API client around the persisted session.
func newClient(c *cli.Context) (*client.Client, *client.Session, error) {
	path := c.String("session-file")
	if path == "" {
		var err error
		path, err = client.DefaultSessionPath()
		if err != nil {
			return nil, nil, err
		}
	}

	session, err := client.LoadSession(path)
	if err != nil {
		return nil, nil, err
	}

	return client.New(c.String("server"), session), session, nil
}

// authedClient builds the client and verifies any stored token first. An
// invalid stored token is dropped silently and the user is asked to log in,
// matching the console's startup behavior.
func authedClient(c *cli.Context) (*client.Client, error) {
	api, session, err := newClient(c)
	if err != nil {
		return nil, err
	}

	ok, err := api.VerifyStoredToken(c.Context)
	if err != nil {
		return nil, err
	}
	if !ok || !session.Authenticated() {
		return nil, fmt.Errorf("not logged in: run `adctl login <email> <password>`")
	}
	return api, nil
}

func runLogin(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("usage: adctl login <email> <password>")
	}

	api, _, err := newClient(c)
	if err != nil {
		return err
	}

	user, err := api.Login(c.Context, c.Args().Get(0), c.Args().Get(1))
	if err != nil {
		return err
	}

	fmt.Printf("Logged in as %s\n", user.Email)
	return nil
}

func runRegister(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("usage: adctl register <email> <password>")
	}

	api, _, err := newClient(c)
	if err != nil {
		return err
	}

	user, err := api.Register(c.Context, c.Args().Get(0), c.Args().Get(1))
	if err != nil {
		return err
	}

	fmt.Printf("Registered and logged in as %s\n", user.Email)
	return nil
}

func runLogout(c *cli.Context) error {
	api, _, err := newClient(c)
	if err != nil {
		return err
	}

	if err := api.Logout(); err != nil {
		return err
	}

	fmt.Println("Logged out")
	return nil
}

func runWhoami(c *cli.Context) error {
	api, err := authedClient(c)
	if err != nil {
		return err
	}

	user, err := api.Me(c.Context)
	if err != nil {
		return err
	}

	fmt.Printf("%s (%s)\n", user.Email, user.ID)
	return nil
}

func runAgents(c *cli.Context) error {
	api, err := authedClient(c)
	if err != nil {
		return err
	}

	agents, err := api.Agents(c.Context)
	if err != nil {
		return err
	}

	client.RenderAgents(os.Stdout, agents)
	return nil
}

func runAddAgent(c *cli.Context) error {
	if c.NArg() != 4 {
		return fmt.Errorf("usage: adctl add-agent <name> <email> <mobile> <password>")
	}

	api, err := authedClient(c)
	if err != nil {
		return err
	}

	agent, err := api.CreateAgent(c.Context,
		c.Args().Get(0), c.Args().Get(1), c.Args().Get(2), c.Args().Get(3))
	if err != nil {
		return err
	}

	fmt.Printf("Agent added successfully! %s <%s>\n", agent.Name, agent.Email)
	return nil
}

func runLists(c *cli.Context) error {
	api, err := authedClient(c)
	if err != nil {
		return err
	}

	// One list expanded at a time; without --expand everything is a summary line.
	if expand := c.String("expand"); expand != "" {
		list, err := api.List(c.Context, expand)
		if err != nil {
			return err
		}
		client.RenderListExpanded(os.Stdout, list)
		return nil
	}

	lists, err := api.Lists(c.Context)
	if err != nil {
		return err
	}
	for i := range lists {
		client.RenderListSummary(os.Stdout, &lists[i])
	}
	return nil
}

func runUpload(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("usage: adctl upload <file>")
	}

	api, err := authedClient(c)
	if err != nil {
		return err
	}

	result, err := api.Upload(c.Context, c.Args().Get(0))
	if err != nil {
		return err
	}

	client.RenderUploadResult(os.Stdout, result)

	// Re-fetch from the server so the display reflects server-side ordering
	// and any concurrent uploads, rather than appending locally.
	lists, err := api.Lists(c.Context)
	if err != nil {
		return err
	}
	fmt.Println("Uploaded lists:")
	for i := range lists {
		client.RenderListSummary(os.Stdout, &lists[i])
	}
	return nil
}

func runDashboard(c *cli.Context) error {
	api, err := authedClient(c)
	if err != nil {
		return err
	}

	stats, err := api.Stats(c.Context)
	if err != nil {
		return err
	}

	client.RenderStats(os.Stdout, stats)
	return nil
}
