package cli

import (
	"bytes"
	"context"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/andy/rosterdash/internal/app"
	"github.com/andy/rosterdash/internal/config"
	"github.com/andy/rosterdash/internal/db"
	"github.com/andy/rosterdash/internal/domain"
	"github.com/andy/rosterdash/internal/identity"
	"github.com/andy/rosterdash/internal/repository"
	"github.com/andy/rosterdash/internal/server"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/zalando/go-keyring"
)

// newRosterServer starts a seeded roster endpoint
func newRosterServer(t *testing.T) (*httptest.Server, *repository.ClientRepo) {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	repo := repository.NewClientRepo(database)
	srv := server.New(repo, identity.NewSequence("srv"), nil, nil)
	if err := srv.Seed(context.Background(), domain.SeedClients()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, repo
}

func newTestApp(t *testing.T, baseURL string) *app.App {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Remote.BaseURL = baseURL
	cfg.Remote.Timeout = 2 * time.Second
	a := app.NewWithConfig(context.Background(), cfg, io.Discard)
	t.Cleanup(func() {
		a.Close()
		SetApp(nil)
	})
	return a
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func execute(t *testing.T, a *app.App, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	SetApp(a)

	var out bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))

	err := rootCmd.Execute()
	if a != nil {
		a.Store.Wait()
	}
	return out.String(), err
}

func TestClientsList(t *testing.T) {
	ts, _ := newRosterServer(t)
	a := newTestApp(t, ts.URL)

	out, err := execute(t, a, "", "clients", "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "Steele Burch") || !strings.Contains(out, "Barron Bowen") {
		t.Fatalf("expected seed clients in output, got:\n%s", out)
	}
	if !strings.Contains(out, "Page 1 of 1  (7 matching client(s))") {
		t.Fatalf("expected page footer, got:\n%s", out)
	}
}

func TestClientsListQuery(t *testing.T) {
	ts, _ := newRosterServer(t)
	a := newTestApp(t, ts.URL)

	out, err := execute(t, a, "", "clients", "list", "--query", "TEL")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "Steele Burch") || strings.Contains(out, "Barron Bowen") {
		t.Fatalf("expected only the TELEPARK client, got:\n%s", out)
	}

	out, err = execute(t, a, "", "clients", "list", "-q", "yen")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "No clients found") {
		t.Fatalf("expected no matches for currency text, got:\n%s", out)
	}
}

func TestClientsListOutOfRangePage(t *testing.T) {
	ts, _ := newRosterServer(t)
	a := newTestApp(t, ts.URL)

	out, err := execute(t, a, "", "clients", "list", "--page", "5")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "Page 5 is empty (1 page(s) available)") {
		t.Fatalf("expected empty page notice, got:\n%s", out)
	}
}

func TestSeedFallbackWhenRemoteDown(t *testing.T) {
	a := newTestApp(t, "http://127.0.0.1:1")

	out, err := execute(t, a, "", "stats")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	for _, want := range []string{
		"unavailable, using demonstration clients",
		"Total clients:  7",
		"Total revenue:  26500.00",
		"Average age:    31",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output, got:\n%s", want, out)
		}
	}
}

func TestClientsAddSyncsToRemote(t *testing.T) {
	ts, repo := newRosterServer(t)
	a := newTestApp(t, ts.URL)

	out, err := execute(t, a, "", "clients", "add",
		"--name", "Ada Lovelace", "--company", "ANALYTICAL", "--age", "36",
		"--gender", "female", "--currency", "INR", "--cost", "99.5")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !strings.Contains(out, "Client created: Ada Lovelace") || !strings.Contains(out, "₹ 99.50") {
		t.Fatalf("unexpected output:\n%s", out)
	}

	n, err := repo.Count(context.Background())
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 8 {
		t.Fatalf("expected remote to hold 8 clients, got %d", n)
	}
}

func TestClientsAddRejectsInvalid(t *testing.T) {
	ts, repo := newRosterServer(t)
	a := newTestApp(t, ts.URL)

	_, err := execute(t, a, "", "clients", "add",
		"--name", "Old Timer", "--company", "ACME", "--age", "121",
		"--gender", "male", "--cost", "10")
	if err == nil || !strings.Contains(err.Error(), "age") {
		t.Fatalf("expected age validation error, got %v", err)
	}

	n, _ := repo.Count(context.Background())
	if n != 7 {
		t.Fatalf("remote must be untouched, got %d clients", n)
	}
}

func TestClientsEditAndShow(t *testing.T) {
	ts, repo := newRosterServer(t)
	a := newTestApp(t, ts.URL)

	if _, err := execute(t, a, "", "clients", "edit", "0", "--company", "NEWCO"); err != nil {
		t.Fatalf("edit: %v", err)
	}

	got, err := repo.GetByID(context.Background(), "0")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Company != "NEWCO" || got.Name != "Steele Burch" {
		t.Fatalf("expected company-only change, got %+v", got)
	}

	out, err := execute(t, a, "", "clients", "show", "0")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(out, "NEWCO") {
		t.Fatalf("expected edited company, got:\n%s", out)
	}
}

func TestClientsEditRequiresAField(t *testing.T) {
	ts, _ := newRosterServer(t)
	a := newTestApp(t, ts.URL)

	if _, err := execute(t, a, "", "clients", "edit", "0"); err == nil {
		t.Fatalf("expected error when no field flags are given")
	}
	if _, err := execute(t, a, "", "clients", "edit", "missing", "--age", "30"); err == nil {
		t.Fatalf("expected not found error")
	}
}

func TestClientsDelete(t *testing.T) {
	ts, repo := newRosterServer(t)
	a := newTestApp(t, ts.URL)

	out, err := execute(t, a, "n\n", "clients", "delete", "3")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !strings.Contains(out, "Cancelled.") {
		t.Fatalf("expected cancellation, got:\n%s", out)
	}
	if _, ok := a.Store.PendingDelete(); ok {
		t.Fatalf("pending delete should be cleared after cancel")
	}

	out, err = execute(t, a, "", "clients", "delete", "3", "--yes")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !strings.Contains(out, "Client deleted: Hinton Hensley") {
		t.Fatalf("unexpected output:\n%s", out)
	}

	n, _ := repo.Count(context.Background())
	if n != 6 {
		t.Fatalf("expected remote to hold 6 clients, got %d", n)
	}
}

func TestLoginLogout(t *testing.T) {
	keyring.MockInit()
	a := newTestApp(t, "http://127.0.0.1:1")

	out, err := execute(t, a, "ada\nsecret\n", "login")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !strings.Contains(out, "Logged in as ada") {
		t.Fatalf("unexpected output:\n%s", out)
	}

	name, err := a.Session.Operator()
	if err != nil || name != "ada" {
		t.Fatalf("expected session for ada, got %q, %v", name, err)
	}

	out, err = execute(t, a, "", "logout")
	if err != nil {
		t.Fatalf("logout: %v", err)
	}
	if !strings.Contains(out, "Logged out ada") {
		t.Fatalf("unexpected output:\n%s", out)
	}

	out, _ = execute(t, a, "", "logout")
	if !strings.Contains(out, "Not logged in.") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rosterdash", "config.yaml")

	out, err := execute(t, nil, "", "config", "init", "--config", path)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, "Config written to") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file: %v", err)
	}

	if _, err := execute(t, nil, "", "config", "init", "--config", path); err == nil {
		t.Fatalf("expected error when config already exists")
	}
}
