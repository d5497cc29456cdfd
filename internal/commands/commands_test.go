package commands_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"todoctl/internal/commands"
	"todoctl/internal/config"
	"todoctl/internal/exitcode"
	"todoctl/internal/service"
	"todoctl/internal/testutil"
)

// runCommand is a helper to run a command with FakeService.
func runCommand(t *testing.T, cmd commands.Command, svc *testutil.FakeService, args []string, quiet bool) (stdout, stderr string, code int) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer

	cfg := &config.Config{
		Dir:   t.TempDir(),
		Quiet: quiet,
	}

	var s service.Service
	if svc != nil {
		s = svc
	}

	ctx := context.Background()
	code = cmd.Run(ctx, cfg, s, args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func expectCode(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("expected exit code %d, got %d", want, got)
	}
}

// Tests for version command
func TestVersionCommand(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.VersionCmd{}, nil, nil, false)

	expectCode(t, code, exitcode.Success)
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "todoctl 0.1.0\n" {
		t.Errorf("expected version output, got %q", stdout)
	}
}

func TestVersionCommand_Verbose(t *testing.T) {
	var outBuf, errBuf bytes.Buffer
	cfg := &config.Config{Dir: t.TempDir(), BaseURL: "http://example.test/api/v1", Username: "u@example.com", Password: "pw"}

	cmd := &commands.VersionCmd{}
	cmd.SetVerbose(true)
	code := cmd.Run(context.Background(), cfg, nil, nil, &outBuf, &errBuf)

	expectCode(t, code, exitcode.Success)
	stdout := outBuf.String()
	if !strings.HasPrefix(stdout, "todoctl 0.1.0\n") {
		t.Errorf("expected version first, got %q", stdout)
	}
	for _, want := range []string{"go:", "base url: http://example.test/api/v1", "config:   " + cfg.FilePath(), "user:     u@example.com"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected %q in output, got %q", want, stdout)
		}
	}
}

func TestVersionCommand_VerboseNotLoggedIn(t *testing.T) {
	cmd := &commands.VersionCmd{}
	cmd.SetVerbose(true)
	stdout, _, code := runCommand(t, cmd, nil, nil, false)

	expectCode(t, code, exitcode.Success)
	if !strings.Contains(stdout, "user:     (not logged in)") {
		t.Errorf("expected not logged in, got %q", stdout)
	}
}

// Tests for help command
func TestHelpCommand(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.HelpCmd{}, nil, nil, false)

	expectCode(t, code, exitcode.Success)
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	for _, want := range []string{"Usage:", "todoctl register", "--base-url", "TODOCTL_BASE_URL"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("help output should contain %q", want)
		}
	}
}

// Tests for register command
func TestRegisterCommand_Success(t *testing.T) {
	svc := testutil.NewFakeService()
	cmd := &commands.RegisterCmd{}
	cmd.SetFields("new@example.com", "New", "User", "pw")

	stdout, stderr, code := runCommand(t, cmd, svc, nil, false)

	expectCode(t, code, exitcode.Success)
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok', got %q", stdout)
	}

	regs := svc.Registrations()
	want := service.Registration{Email: "new@example.com", FirstName: "New", LastName: "User", Password: "pw"}
	if len(regs) != 1 || regs[0] != want {
		t.Errorf("expected registration %+v, got %+v", want, regs)
	}
}

func TestRegisterCommand_MissingFlags(t *testing.T) {
	svc := testutil.NewFakeService()
	cmd := &commands.RegisterCmd{}
	cmd.SetFields("new@example.com", "", "User", "")

	_, stderr, code := runCommand(t, cmd, svc, nil, false)

	expectCode(t, code, exitcode.UserError)
	if stderr != "error: missing required flags: --first-name, --password\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
	if len(svc.Registrations()) != 0 {
		t.Error("nothing should be sent when flags are missing")
	}
}

func TestRegisterCommand_EmailTaken(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.RegisterErr = errors.New("400 POST: Email already registered")
	cmd := &commands.RegisterCmd{}
	cmd.SetFields("bot@example.com", "B", "O", "pw")

	_, stderr, code := runCommand(t, cmd, svc, nil, false)

	expectCode(t, code, exitcode.BackendError)
	if !strings.Contains(stderr, "Email already registered") {
		t.Errorf("expected server detail in stderr, got %q", stderr)
	}
}

// Tests for whoami command
func TestWhoamiCommand(t *testing.T) {
	svc := testutil.NewFakeService()

	stdout, stderr, code := runCommand(t, &commands.WhoamiCmd{}, svc, nil, false)

	expectCode(t, code, exitcode.Success)
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "Bot One <bot@example.com>\n" {
		t.Errorf("unexpected output %q", stdout)
	}
}

func TestWhoamiCommand_Unauthorized(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.CurrentUserErr = fmt.Errorf("%w: %s", service.ErrUnauthorized, testutil.DetailBadCredentials)

	_, stderr, code := runCommand(t, &commands.WhoamiCmd{}, svc, nil, false)

	expectCode(t, code, exitcode.AuthError)
	if !strings.HasPrefix(stderr, "error: auth error: ") {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

// Tests for addlist command
func TestAddListCommand(t *testing.T) {
	svc := testutil.NewFakeService()

	stdout, stderr, code := runCommand(t, &commands.AddListCmd{}, svc, []string{"Weekend", "chores"}, false)

	expectCode(t, code, exitcode.Success)
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "   1  Weekend chores\n" {
		t.Errorf("unexpected output %q", stdout)
	}
	if !svc.HasList(1) {
		t.Error("list 1 should exist")
	}
}

func TestAddListCommand_PrintsIDWhenQuiet(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.SeedList(4, "Existing")

	stdout, _, code := runCommand(t, &commands.AddListCmd{}, svc, []string{"New"}, true)

	expectCode(t, code, exitcode.Success)
	if stdout != "   5  New\n" {
		t.Errorf("unexpected output %q", stdout)
	}
}

func TestAddListCommand_NameRequired(t *testing.T) {
	svc := testutil.NewFakeService()

	for _, args := range [][]string{nil, {"  "}} {
		_, stderr, code := runCommand(t, &commands.AddListCmd{}, svc, args, false)
		expectCode(t, code, exitcode.UserError)
		if stderr != "error: list name required\n" {
			t.Errorf("unexpected stderr %q", stderr)
		}
	}
}

func TestAddListCommand_InvalidInput(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.CreateListErr = fmt.Errorf("%w: 1 validation error for ListInput", service.ErrInvalidInput)

	_, stderr, code := runCommand(t, &commands.AddListCmd{}, svc, []string{"x"}, false)

	expectCode(t, code, exitcode.UserError)
	if !strings.Contains(stderr, "validation error") {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

// Tests for view command
func TestViewCommand_Golden(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.SeedList(1, "Groceries")
	svc.SeedItem(1, 1, "Buy milk")
	svc.SeedItem(1, 2, "Buy eggs")
	svc.SeedItem(1, 5, " ")

	stdout, stderr, code := runCommand(t, &commands.ViewCmd{}, svc, []string{"1"}, false)

	expectCode(t, code, exitcode.Success)
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	testutil.GoldenString(t, "view_items", stdout)
}

func TestViewCommand_EmptyList(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.SeedList(2, "Empty")

	stdout, _, code := runCommand(t, &commands.ViewCmd{}, svc, []string{"2"}, false)
	expectCode(t, code, exitcode.Success)
	if stdout != "------------\nlist 2\n------------\nno items\n" {
		t.Errorf("unexpected output %q", stdout)
	}

	stdout, _, _ = runCommand(t, &commands.ViewCmd{}, svc, []string{"2"}, true)
	if strings.Contains(stdout, "no items") {
		t.Errorf("quiet output should not contain 'no items': %q", stdout)
	}
}

func TestViewCommand_NotFound(t *testing.T) {
	svc := testutil.NewFakeService()

	stdout, stderr, code := runCommand(t, &commands.ViewCmd{}, svc, []string{"999"}, false)

	expectCode(t, code, exitcode.UserError)
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	if !strings.Contains(stderr, testutil.DetailListNotFound) {
		t.Errorf("expected server detail in stderr, got %q", stderr)
	}
}

func TestViewCommand_BadArgs(t *testing.T) {
	svc := testutil.NewFakeService()

	tests := []struct {
		args   []string
		stderr string
	}{
		{nil, "error: list id required\n"},
		{[]string{"abc"}, "error: invalid list id: abc\n"},
		{[]string{"0"}, "error: invalid list id: 0\n"},
		{[]string{"1", "2"}, "error: unexpected argument: 2\n"},
	}
	for _, tt := range tests {
		_, stderr, code := runCommand(t, &commands.ViewCmd{}, svc, tt.args, false)
		expectCode(t, code, exitcode.UserError)
		if stderr != tt.stderr {
			t.Errorf("args %v: expected %q, got %q", tt.args, tt.stderr, stderr)
		}
	}
}

func TestViewCommand_BackendError(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.SeedList(1, "L")
	svc.ListItemsErr[1] = errors.New("connection refused")

	_, stderr, code := runCommand(t, &commands.ViewCmd{}, svc, []string{"1"}, false)

	expectCode(t, code, exitcode.BackendError)
	if stderr != "error: backend error: connection refused\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

// Tests for add command
func TestAddCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.SeedList(1, "Groceries")

	stdout, stderr, code := runCommand(t, &commands.AddCmd{}, svc, []string{"1", "Buy", "bread"}, false)

	expectCode(t, code, exitcode.Success)
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "   1  Buy bread\n" {
		t.Errorf("unexpected output %q", stdout)
	}
	items := svc.Items(1)
	if len(items) != 1 || items[0].Name != "Buy bread" {
		t.Errorf("unexpected items %+v", items)
	}
}

func TestAddCommand_Quiet(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.SeedList(1, "Groceries")

	stdout, _, code := runCommand(t, &commands.AddCmd{}, svc, []string{"1", "x"}, true)
	expectCode(t, code, exitcode.Success)
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
}

func TestAddCommand_TitleRequired(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.SeedList(1, "Groceries")

	_, stderr, code := runCommand(t, &commands.AddCmd{}, svc, []string{"1"}, false)
	expectCode(t, code, exitcode.UserError)
	if stderr != "error: title required\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestAddCommand_MissingList(t *testing.T) {
	svc := testutil.NewFakeService()

	_, stderr, code := runCommand(t, &commands.AddCmd{}, svc, []string{"7", "x"}, false)
	expectCode(t, code, exitcode.UserError)
	if !strings.Contains(stderr, testutil.DetailListNotFound) {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

// Tests for update command
func TestUpdateCommand(t *testing.T) {
	for _, args := range [][]string{
		{"1/3", "Oat", "milk"},
		{"1", "3", "Oat", "milk"},
	} {
		svc := testutil.NewFakeService()
		svc.SeedList(1, "Groceries")
		svc.SeedItem(1, 3, "Milk")

		stdout, stderr, code := runCommand(t, &commands.UpdateCmd{}, svc, args, false)

		expectCode(t, code, exitcode.Success)
		if stderr != "" {
			t.Errorf("args %v: expected no stderr, got %q", args, stderr)
		}
		if stdout != "ok\n" {
			t.Errorf("args %v: expected 'ok', got %q", args, stdout)
		}
		if got := svc.Items(1)[0].Name; got != "Oat milk" {
			t.Errorf("args %v: expected renamed item, got %q", args, got)
		}
	}
}

func TestUpdateCommand_MissingItem(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.SeedList(1, "Groceries")

	_, stderr, code := runCommand(t, &commands.UpdateCmd{}, svc, []string{"1/9", "x"}, false)
	expectCode(t, code, exitcode.UserError)
	if !strings.Contains(stderr, testutil.DetailItemNotFound) {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestUpdateCommand_TitleRequired(t *testing.T) {
	svc := testutil.NewFakeService()

	_, stderr, code := runCommand(t, &commands.UpdateCmd{}, svc, []string{"1/2"}, false)
	expectCode(t, code, exitcode.UserError)
	if stderr != "error: title required\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

// Tests for rm command
func TestRmCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.SeedList(1, "Groceries")
	svc.SeedItem(1, 3, "Milk")
	svc.SeedItem(1, 4, "Eggs")

	stdout, _, code := runCommand(t, &commands.RmCmd{}, svc, []string{"1", "3"}, false)

	expectCode(t, code, exitcode.Success)
	if stdout != "ok\n" {
		t.Errorf("expected 'ok', got %q", stdout)
	}
	items := svc.Items(1)
	if len(items) != 1 || items[0].ID != 4 {
		t.Errorf("unexpected items %+v", items)
	}
}

func TestRmCommand_BadRef(t *testing.T) {
	svc := testutil.NewFakeService()

	tests := []struct {
		args   []string
		stderr string
	}{
		{nil, "error: item reference required\n"},
		{[]string{"1"}, "error: item reference required\n"},
		{[]string{"1/x"}, "error: invalid item reference: 1/x\n"},
		{[]string{"1/2", "3"}, "error: unexpected argument: 3\n"},
	}
	for _, tt := range tests {
		_, stderr, code := runCommand(t, &commands.RmCmd{}, svc, tt.args, false)
		expectCode(t, code, exitcode.UserError)
		if stderr != tt.stderr {
			t.Errorf("args %v: expected %q, got %q", tt.args, tt.stderr, stderr)
		}
	}
}

// Tests for rmlist command
func TestRmListCommand_Empty(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.SeedList(1, "Old")

	stdout, _, code := runCommand(t, &commands.RmListCmd{}, svc, []string{"1"}, false)

	expectCode(t, code, exitcode.Success)
	if stdout != "ok\n" {
		t.Errorf("expected 'ok', got %q", stdout)
	}
	if svc.HasList(1) {
		t.Error("list should be deleted")
	}
}

func TestRmListCommand_NotEmpty(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.SeedList(1, "Busy")
	svc.SeedItem(1, 1, "Pending")

	_, stderr, code := runCommand(t, &commands.RmListCmd{}, svc, []string{"1"}, false)

	expectCode(t, code, exitcode.UserError)
	if stderr != "error: list not empty (use --force)\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
	if !svc.HasList(1) {
		t.Error("list should still exist")
	}
}

func TestRmListCommand_Force(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.SeedList(1, "Busy")
	svc.SeedItem(1, 1, "Pending")
	svc.ListItemsErr[1] = errors.New("must not be called")

	cmd := &commands.RmListCmd{}
	cmd.SetForce(true)
	_, stderr, code := runCommand(t, cmd, svc, []string{"1"}, true)

	expectCode(t, code, exitcode.Success)
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if svc.HasList(1) {
		t.Error("list should be deleted")
	}
}

func TestRmListCommand_NotFound(t *testing.T) {
	svc := testutil.NewFakeService()

	_, stderr, code := runCommand(t, &commands.RmListCmd{}, svc, []string{"42"}, false)
	expectCode(t, code, exitcode.UserError)
	if !strings.Contains(stderr, testutil.DetailListNotFound) {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

// Tests for registry
func TestRegistry_AliasesResolve(t *testing.T) {
	tests := map[string]string{
		"createlist": "addlist",
		"list":       "view",
		"show":       "view",
		"rename":     "update",
		"create":     "add",
		"me":         "whoami",
		"signup":     "register",
	}
	for alias, name := range tests {
		cmd, ok := commands.DefaultRegistry.Find(alias)
		if !ok {
			t.Errorf("alias %q not registered", alias)
			continue
		}
		if cmd.Name() != name {
			t.Errorf("alias %q resolves to %q, want %q", alias, cmd.Name(), name)
		}
	}
}

func TestRegistry_DuplicateRejected(t *testing.T) {
	r := commands.NewRegistry()
	if err := r.Register(&commands.ViewCmd{}); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if err := r.Register(&commands.ViewCmd{}); err == nil {
		t.Error("expected duplicate registration to fail")
	}
}

func TestWantsService(t *testing.T) {
	tests := []struct {
		cmd  commands.Command
		want bool
	}{
		{&commands.HelpCmd{}, false},
		{&commands.LogoutCmd{}, false},
		{&commands.RegisterCmd{}, true},
		{&commands.LoginCmd{}, true},
		{&commands.ViewCmd{}, true},
	}
	for _, tt := range tests {
		if got := commands.WantsService(tt.cmd); got != tt.want {
			t.Errorf("WantsService(%s) = %v, want %v", tt.cmd.Name(), got, tt.want)
		}
	}
}

func TestHelpCommand_ListsRegistry(t *testing.T) {
	r := commands.NewRegistry()
	if err := r.Register(&commands.RmCmd{}); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(&commands.AddListCmd{}); err != nil {
		t.Fatal(err)
	}

	stdout, _, code := runCommand(t, commands.NewHelpCmd(r), nil, nil, false)

	expectCode(t, code, exitcode.Success)
	want := "Usage:\n" +
		"  todoctl addlist [common flags] <list-name...>\n" +
		"      Create a list and print its id (aliases: createlist)\n" +
		"  todoctl rm [common flags] <ref>\n" +
		"      Delete an item\n"
	if !strings.HasPrefix(stdout, want) {
		t.Errorf("expected prefix %q, got %q", want, stdout)
	}
}

func TestRegistry_SelfAliasRejected(t *testing.T) {
	r := commands.NewRegistry()
	if err := r.Register(selfAliasCmd{commands.NewHelpCmd(r)}); err == nil {
		t.Error("expected alias equal to name to be rejected")
	}
	if _, ok := r.Find("dup"); ok {
		t.Error("rejected command must not be registered")
	}
}

type selfAliasCmd struct{ *commands.HelpCmd }

func (selfAliasCmd) Name() string      { return "dup" }
func (selfAliasCmd) Aliases() []string { return []string{"dup"} }
