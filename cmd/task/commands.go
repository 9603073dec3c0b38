package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/phrazzld/task-api/internal/client"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/urfave/cli/v2"
)

// errReported marks a failure whose message has already been printed.
var errReported = errors.New("command failed")

var taskStatuses = statusNames(domain.TaskStatuses)

func newApp(t *terminal) *cli.App {
	return &cli.App{
		Name:  "task",
		Usage: "A CLI for the Task Manager API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "api-url",
				Usage:   "base URL of the task manager API",
				Value:   client.DefaultBaseURL,
				EnvVars: []string{"TASK_API_URL"},
			},
			&cli.StringFlag{
				Name:    "token-file",
				Usage:   "where the login token is stored",
				Value:   client.DefaultTokenFile,
				EnvVars: []string{"TASK_TOKEN_FILE"},
			},
		},
		Writer:    t.out,
		ErrWriter: t.out,
		Commands: []*cli.Command{
			{
				Name:  "register",
				Usage: "Registers a new user",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username"},
					&cli.StringFlag{Name: "email"},
					&cli.StringFlag{Name: "password"},
				},
				Action: t.register,
			},
			{
				Name:  "login",
				Usage: "Logs in the user and saves the auth token",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username"},
					&cli.StringFlag{Name: "password"},
				},
				Action: t.login,
			},
			{
				Name:   "logout",
				Usage:  "Logs out the user by deleting the auth token",
				Action: t.logout,
			},
			{
				Name:  "task",
				Usage: "Commands for managing tasks",
				Subcommands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "Lists all your tasks",
						Action: t.listTasks,
					},
					{
						Name:  "create",
						Usage: "Creates a new task",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "the title of the task"},
							&cli.StringFlag{Name: "desc", Aliases: []string{"d"}, Usage: "the description of the task (optional)"},
						},
						Action: t.createTask,
					},
					{
						Name:      "update",
						Usage:     "Updates a specific task by its ID",
						ArgsUsage: "TASK_ID",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "status", Usage: "new status: " + strings.Join(taskStatuses, ", ")},
							&cli.StringFlag{Name: "title", Usage: "new title for the task"},
							&cli.StringFlag{Name: "desc", Usage: "new description for the task"},
						},
						Action: t.updateTask,
					},
					{
						Name:      "delete",
						Usage:     "Deletes a specific task by its ID",
						ArgsUsage: "TASK_ID",
						Flags: []cli.Flag{
							&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "bypass confirmation prompt"},
						},
						Action: t.deleteTask,
					},
				},
			},
		},
	}
}

// fail prints msg as an error and returns errReported.
func (t *terminal) fail(msg string) error {
	t.failure(msg)
	return errReported
}

func (t *terminal) newClient(c *cli.Context, token string) (*client.Client, error) {
	opts := []client.Option{}
	if token != "" {
		opts = append(opts, client.WithToken(token))
	}
	api, err := client.New(c.String("api-url"), opts...)
	if err != nil {
		return nil, t.fail("Error: " + err.Error())
	}
	return api, nil
}

// authenticatedClient loads the saved token. No request is made without one.
func (t *terminal) authenticatedClient(c *cli.Context) (*client.Client, error) {
	token, err := client.NewTokenStore(c.String("token-file")).Load()
	if err != nil {
		return nil, t.fail(client.Describe(err, client.ActionList, 0))
	}
	return t.newClient(c, token)
}

// flagOrPrompt returns the flag value, prompting for it when unset.
func (t *terminal) flagOrPrompt(c *cli.Context, name, label string) (string, error) {
	if v := c.String(name); v != "" {
		return v, nil
	}
	return t.prompt(label)
}

func (t *terminal) register(c *cli.Context) error {
	username, err := t.flagOrPrompt(c, "username", "Username")
	if err != nil {
		return err
	}
	email, err := t.flagOrPrompt(c, "email", "Email")
	if err != nil {
		return err
	}
	password := c.String("password")
	if password == "" {
		if password, err = t.promptConfirmedSecret("Password"); err != nil {
			return err
		}
	}

	api, err := t.newClient(c, "")
	if err != nil {
		return err
	}

	reg, err := api.Register(c.Context, username, email, password)
	if err != nil {
		return t.fail(client.Describe(err, client.ActionRegister, 0))
	}

	t.success(fmt.Sprintf("%s (ID: %d)", reg.Message, reg.UserID))
	return nil
}

func (t *terminal) login(c *cli.Context) error {
	username, err := t.flagOrPrompt(c, "username", "Username")
	if err != nil {
		return err
	}
	password := c.String("password")
	if password == "" {
		if password, err = t.promptSecret("Password"); err != nil {
			return err
		}
	}

	api, err := t.newClient(c, "")
	if err != nil {
		return err
	}

	token, err := api.Login(c.Context, username, password)
	if err != nil {
		return t.fail(client.Describe(err, client.ActionLogin, 0))
	}

	if err := client.NewTokenStore(c.String("token-file")).Save(token); err != nil {
		return t.fail("Error: " + err.Error())
	}

	t.success("Login successful! Token saved.")
	return nil
}

func (t *terminal) logout(c *cli.Context) error {
	removed, err := client.NewTokenStore(c.String("token-file")).Remove()
	if err != nil {
		return t.fail("Error: " + err.Error())
	}
	if !removed {
		t.println("You are not logged in.")
		return nil
	}
	t.success("Logged out successfully.")
	return nil
}

func (t *terminal) listTasks(c *cli.Context) error {
	api, err := t.authenticatedClient(c)
	if err != nil {
		return err
	}

	tasks, err := api.ListTasks(c.Context)
	if err != nil {
		return t.fail(client.Describe(err, client.ActionList, 0))
	}

	if len(tasks) == 0 {
		t.println("No tasks found.")
		return nil
	}

	t.printf("--- Found %d task(s) ---\n", len(tasks))
	for _, task := range tasks {
		t.printf("%s | Status: %s | Title: %s\n",
			idStyle.Sprintf("ID: %d", task.ID), task.Status, task.Title)
		if task.Description != nil && *task.Description != "" {
			t.printf("   Desc: %s\n", *task.Description)
		}
		t.println(strings.Repeat("-", 20))
	}
	return nil
}

func (t *terminal) createTask(c *cli.Context) error {
	api, err := t.authenticatedClient(c)
	if err != nil {
		return err
	}

	title, err := t.flagOrPrompt(c, "title", "Task Title")
	if err != nil {
		return err
	}

	res, err := api.CreateTask(c.Context, title, c.String("desc"))
	if err != nil {
		return t.fail(client.Describe(err, client.ActionCreate, 0))
	}

	t.success(fmt.Sprintf("Success: %s (ID: %d)", res.Message, res.TaskID))
	return nil
}

func (t *terminal) updateTask(c *cli.Context) error {
	taskID, err := t.taskIDArg(c)
	if err != nil {
		return err
	}

	api, err := t.authenticatedClient(c)
	if err != nil {
		return err
	}

	var update client.TaskUpdate
	if status := strings.ToLower(c.String("status")); status != "" {
		if !validStatus(status) {
			return t.fail(fmt.Sprintf("Error: Invalid value for '--status': '%s' is not one of %s.",
				c.String("status"), quoteAll(taskStatuses)))
		}
		update.Status = &status
	}
	if title := c.String("title"); title != "" {
		update.Title = &title
	}
	if desc := c.String("desc"); desc != "" {
		update.Description = &desc
	}

	res, err := api.UpdateTask(c.Context, taskID, update)
	if errors.Is(err, client.ErrNothingToUpdate) {
		t.println(client.Describe(err, client.ActionUpdate, taskID))
		return nil
	}
	if err != nil {
		return t.fail(client.Describe(err, client.ActionUpdate, taskID))
	}

	t.success(fmt.Sprintf("Success: %s (ID: %d)", res.Message, res.TaskID))
	return nil
}

func (t *terminal) deleteTask(c *cli.Context) error {
	taskID, err := t.taskIDArg(c)
	if err != nil {
		return err
	}

	api, err := t.authenticatedClient(c)
	if err != nil {
		return err
	}

	if !c.Bool("yes") {
		t.warning(fmt.Sprintf("Warning: You are about to delete task %d.", taskID))
		ok, err := t.confirm("Do you want to continue?")
		if err != nil {
			return err
		}
		if !ok {
			t.println("Delete operation cancelled.")
			return nil
		}
	}

	msg, err := api.DeleteTask(c.Context, taskID)
	if err != nil {
		return t.fail(client.Describe(err, client.ActionDelete, taskID))
	}

	t.success("Success: " + msg)
	return nil
}

func (t *terminal) taskIDArg(c *cli.Context) (int64, error) {
	arg := c.Args().First()
	if arg == "" {
		return 0, t.fail("Error: Missing argument 'TASK_ID'.")
	}
	// Flags are only parsed before positional arguments.
	if c.Args().Len() > 1 {
		return 0, t.fail(fmt.Sprintf("Error: Unexpected arguments after TASK_ID: %s. Put flags before the ID.",
			strings.Join(c.Args().Tail(), " ")))
	}
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, t.fail(fmt.Sprintf("Error: Invalid value for 'TASK_ID': '%s' is not a valid integer.", arg))
	}
	return id, nil
}

func validStatus(status string) bool {
	for _, s := range taskStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func statusNames(statuses []domain.TaskStatus) []string {
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = string(s)
	}
	return names
}

func quoteAll(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + v + "'"
	}
	return strings.Join(quoted, ", ")
}
