package state_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskdeck/internal/service"
	"taskdeck/internal/state"
	"taskdeck/internal/testutil"
	"taskdeck/internal/view"
)

const (
	testEmail    = "alice@example.com"
	testPassword = "hunter2"
)

// loggedIn creates a store bound to gw, registers a user and logs in.
func loggedIn(t *testing.T, gw service.Gateway, confirm state.Confirmer) *state.Store {
	t.Helper()
	ctx := context.Background()
	if seeder, ok := gw.(interface{ AddUser(email, password string) }); ok {
		seeder.AddUser(testEmail, testPassword)
	}
	st := state.New(gw, nil, nil, confirm)
	st.Login(ctx, testEmail, testPassword)
	require.NoError(t, st.Err())
	require.True(t, st.Authenticated())
	return st
}

func taskIDs(tasks []service.Task) []int {
	out := make([]int, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func TestSignupSuccessDoesNotAuthenticate(t *testing.T) {
	gw := testutil.NewFakeGateway()
	st := state.New(gw, nil, nil, nil)

	st.Signup(context.Background(), testEmail, testPassword)
	require.NoError(t, st.Err())
	assert.Equal(t, "Signup successful. Now login.", st.OK())
	assert.False(t, st.Authenticated())
}

func TestSignupDuplicateEmail(t *testing.T) {
	gw := testutil.NewFakeGateway()
	gw.AddUser(testEmail, "other")
	st := state.New(gw, nil, nil, nil)

	st.Signup(context.Background(), testEmail, testPassword)
	var authErr *service.AuthError
	require.ErrorAs(t, st.Err(), &authErr)
	assert.Equal(t, "Email already registered", authErr.Message)
}

func TestLoginFailureStaysAnonymous(t *testing.T) {
	gw := testutil.NewFakeGateway()
	gw.AddUser(testEmail, testPassword)
	st := state.New(gw, nil, nil, nil)

	st.Login(context.Background(), testEmail, "wrong")
	var authErr *service.AuthError
	require.ErrorAs(t, st.Err(), &authErr)
	assert.False(t, st.Authenticated())
	assert.Empty(t, st.Token())
}

func TestLoginSuccess(t *testing.T) {
	gw := testutil.NewFakeGateway()
	st := loggedIn(t, gw, nil)

	assert.Equal(t, testutil.Token, st.Token())
	assert.Equal(t, "Logged in!", st.OK())
}

func TestOperationsRequireAuth(t *testing.T) {
	gw := testutil.NewFakeGateway()
	gw.AddProject("inbox")
	st := state.New(gw, nil, nil, nil)
	ctx := context.Background()

	st.RefreshProjects(ctx)
	var authErr *service.AuthError
	require.ErrorAs(t, st.Err(), &authErr)
	assert.Zero(t, gw.Calls("ListProjects"))

	st.CreateTask(ctx, "x")
	require.ErrorAs(t, st.Err(), &authErr)
	assert.Zero(t, gw.Calls("CreateTask"))
}

func TestRefreshProjectsAutoSelectsFirstFromEmpty(t *testing.T) {
	gw := testutil.NewFakeGateway()
	p1 := gw.AddProject("inbox")
	gw.AddProject("work")
	gw.AddTask(p1.ID, "buy milk", false)
	st := loggedIn(t, gw, nil)
	ctx := context.Background()

	st.RefreshProjects(ctx)
	require.NoError(t, st.Err())
	assert.Equal(t, p1.ID, st.Selected())
	// Auto-selection pulls the new selection's tasks too.
	assert.Equal(t, []int{1}, taskIDs(st.Tasks()))
}

func TestRefreshProjectsDoesNotReassignExistingSelection(t *testing.T) {
	gw := testutil.NewFakeGateway()
	gw.AddProject("inbox")
	p2 := gw.AddProject("work")
	st := loggedIn(t, gw, nil)
	ctx := context.Background()

	st.RefreshProjects(ctx)
	st.SelectProject(ctx, p2.ID)
	require.NoError(t, st.Err())

	st.RefreshProjects(ctx)
	require.NoError(t, st.Err())
	assert.Equal(t, p2.ID, st.Selected())
}

func TestRefreshProjectsClearsVanishedSelection(t *testing.T) {
	gw := testutil.NewFakeGateway()
	gw.AddProject("inbox")
	p2 := gw.AddProject("work")
	gw.AddTask(p2.ID, "report", false)
	st := loggedIn(t, gw, nil)
	ctx := context.Background()

	st.RefreshProjects(ctx)
	st.SelectProject(ctx, p2.ID)
	require.NoError(t, st.Err())
	require.NotEmpty(t, st.Tasks())

	// The project disappears server side.
	require.NoError(t, gw.DeleteProject(ctx, p2.ID))

	st.RefreshProjects(ctx)
	require.NoError(t, st.Err())
	assert.Zero(t, st.Selected())
	assert.Empty(t, st.Tasks())
}

func TestRefreshProjectsFailureKeepsCache(t *testing.T) {
	gw := testutil.NewFakeGateway()
	p1 := gw.AddProject("inbox")
	st := loggedIn(t, gw, nil)
	ctx := context.Background()

	st.RefreshProjects(ctx)
	require.NoError(t, st.Err())
	require.Len(t, st.Projects(), 1)

	gw.ListProjectsErr = &service.NetworkError{Err: context.DeadlineExceeded}
	st.RefreshProjects(ctx)
	var netErr *service.NetworkError
	require.ErrorAs(t, st.Err(), &netErr)
	assert.Len(t, st.Projects(), 1)
	assert.Equal(t, p1.ID, st.Selected())
}

func TestCreateProjectSelectsNewProject(t *testing.T) {
	gw := testutil.NewFakeGateway()
	p1 := gw.AddProject("inbox")
	gw.AddTask(p1.ID, "old task", false)
	st := loggedIn(t, gw, nil)
	ctx := context.Background()

	st.RefreshProjects(ctx)
	require.Equal(t, p1.ID, st.Selected())

	st.CreateProject(ctx, "work")
	require.NoError(t, st.Err())
	assert.Equal(t, "Project created.", st.OK())
	assert.Len(t, st.Projects(), 2)
	assert.Equal(t, 2, st.Selected())
	assert.Empty(t, st.Tasks())
}

func TestCreateProjectBlankNameIsNoOp(t *testing.T) {
	gw := testutil.NewFakeGateway()
	st := loggedIn(t, gw, nil)

	st.CreateProject(context.Background(), "   ")
	require.NoError(t, st.Err())
	assert.Empty(t, st.OK())
	assert.Zero(t, gw.Calls("CreateProject"))
}

func TestDeleteProjectConfirmPrompt(t *testing.T) {
	gw := testutil.NewFakeGateway()
	p1 := gw.AddProject("inbox")
	rec := &testutil.ConfirmRecorder{}
	st := loggedIn(t, gw, rec.Confirm)
	ctx := context.Background()

	st.RefreshProjects(ctx)
	st.DeleteProject(ctx, p1.ID)
	require.NoError(t, st.Err())
	assert.Equal(t, "Project deleted.", st.OK())
	assert.Equal(t, []string{`Delete project "inbox"? This cannot be undone.`}, rec.Prompts)
	assert.Empty(t, st.Projects())
	assert.Zero(t, st.Selected())
}

func TestDeleteProjectDeclinedDoesNothing(t *testing.T) {
	gw := testutil.NewFakeGateway()
	p1 := gw.AddProject("inbox")
	st := loggedIn(t, gw, testutil.ConfirmNone)
	ctx := context.Background()

	st.RefreshProjects(ctx)
	gw.ResetCalls()

	st.DeleteProject(ctx, p1.ID)
	require.NoError(t, st.Err())
	assert.Empty(t, st.OK())
	assert.Zero(t, gw.Calls("DeleteProject"))
	assert.Len(t, st.Projects(), 1)
}

func TestSelectProjectUnknownID(t *testing.T) {
	gw := testutil.NewFakeGateway()
	gw.AddProject("inbox")
	st := loggedIn(t, gw, nil)
	ctx := context.Background()

	st.RefreshProjects(ctx)
	st.SelectProject(ctx, 99)
	var nfErr *service.NotFoundError
	require.ErrorAs(t, st.Err(), &nfErr)
	assert.Equal(t, 1, st.Selected())
}

func TestCreateTaskRefetches(t *testing.T) {
	gw := testutil.NewFakeGateway()
	p1 := gw.AddProject("inbox")
	gw.AddTask(p1.ID, "first", false)
	st := loggedIn(t, gw, nil)
	ctx := context.Background()

	st.RefreshProjects(ctx)
	gw.ResetCalls()

	st.CreateTask(ctx, "second")
	require.NoError(t, st.Err())
	assert.Equal(t, "Task added.", st.OK())
	assert.Equal(t, 1, gw.Calls("CreateTask"))
	assert.Equal(t, 1, gw.Calls("ListTasks"))
	assert.Equal(t, []int{1, 2}, taskIDs(st.Tasks()))
}

func TestCreateTaskWithoutSelectionIsNoOp(t *testing.T) {
	gw := testutil.NewFakeGateway()
	st := loggedIn(t, gw, nil)

	st.CreateTask(context.Background(), "orphan")
	require.NoError(t, st.Err())
	assert.Empty(t, st.OK())
	assert.Zero(t, gw.Calls("CreateTask"))
}

func TestToggleTaskFlipsCachedValue(t *testing.T) {
	gw := testutil.NewFakeGateway()
	p1 := gw.AddProject("inbox")
	done := gw.AddTask(p1.ID, "done already", true)
	open := gw.AddTask(p1.ID, "still open", false)
	st := loggedIn(t, gw, nil)
	ctx := context.Background()

	st.RefreshProjects(ctx)

	st.ToggleTask(ctx, open.ID)
	require.NoError(t, st.Err())
	assert.Equal(t, "Task updated.", st.OK())
	assert.True(t, gw.TasksOf(p1.ID)[1].Done)

	st.ToggleTask(ctx, done.ID)
	require.NoError(t, st.Err())
	assert.False(t, gw.TasksOf(p1.ID)[0].Done)
}

func TestToggleTaskUnknownID(t *testing.T) {
	gw := testutil.NewFakeGateway()
	gw.AddProject("inbox")
	st := loggedIn(t, gw, nil)
	ctx := context.Background()

	st.RefreshProjects(ctx)
	st.ToggleTask(ctx, 42)
	var nfErr *service.NotFoundError
	require.ErrorAs(t, st.Err(), &nfErr)
	assert.Zero(t, gw.Calls("SetTaskDone"))
}

func TestToggleTaskFailureKeepsCache(t *testing.T) {
	gw := testutil.NewFakeGateway()
	p1 := gw.AddProject("inbox")
	open := gw.AddTask(p1.ID, "task", false)
	st := loggedIn(t, gw, nil)
	ctx := context.Background()

	st.RefreshProjects(ctx)
	before := st.Tasks()

	gw.SetTaskDoneErr = &service.NetworkError{Err: context.DeadlineExceeded}
	st.ToggleTask(ctx, open.ID)
	var netErr *service.NetworkError
	require.ErrorAs(t, st.Err(), &netErr)
	assert.Equal(t, before, st.Tasks())
}

func TestRenameTaskBlankTitleIsNoOp(t *testing.T) {
	gw := testutil.NewFakeGateway()
	p1 := gw.AddProject("inbox")
	task := gw.AddTask(p1.ID, "original", false)
	st := loggedIn(t, gw, nil)
	ctx := context.Background()

	st.RefreshProjects(ctx)
	st.RenameTask(ctx, task.ID, "  ")
	require.NoError(t, st.Err())
	assert.Zero(t, gw.Calls("RenameTask"))
	assert.Equal(t, "original", gw.TasksOf(p1.ID)[0].Title)
}

func TestRenameTask(t *testing.T) {
	gw := testutil.NewFakeGateway()
	p1 := gw.AddProject("inbox")
	task := gw.AddTask(p1.ID, "original", false)
	st := loggedIn(t, gw, nil)
	ctx := context.Background()

	st.RefreshProjects(ctx)
	st.RenameTask(ctx, task.ID, " renamed ")
	require.NoError(t, st.Err())
	assert.Equal(t, "Task renamed.", st.OK())
	assert.Equal(t, "renamed", gw.TasksOf(p1.ID)[0].Title)
	assert.Equal(t, "renamed", st.Tasks()[0].Title)
}

func TestDeleteTaskConfirmNamesTitle(t *testing.T) {
	gw := testutil.NewFakeGateway()
	p1 := gw.AddProject("inbox")
	task := gw.AddTask(p1.ID, "doomed", false)
	rec := &testutil.ConfirmRecorder{}
	st := loggedIn(t, gw, rec.Confirm)
	ctx := context.Background()

	st.RefreshProjects(ctx)
	st.DeleteTask(ctx, task.ID)
	require.NoError(t, st.Err())
	assert.Equal(t, "Task deleted.", st.OK())
	assert.Equal(t, []string{`Delete this task? "doomed"`}, rec.Prompts)
	assert.Empty(t, st.Tasks())
}

func TestDeleteTaskDeclined(t *testing.T) {
	gw := testutil.NewFakeGateway()
	p1 := gw.AddProject("inbox")
	task := gw.AddTask(p1.ID, "kept", false)
	st := loggedIn(t, gw, testutil.ConfirmNone)
	ctx := context.Background()

	st.RefreshProjects(ctx)
	gw.ResetCalls()

	st.DeleteTask(ctx, task.ID)
	require.NoError(t, st.Err())
	assert.Empty(t, st.OK())
	assert.Zero(t, gw.Calls("DeleteTask"))
	assert.Len(t, st.Tasks(), 1)
}

func TestLogoutResetsEverything(t *testing.T) {
	gw := testutil.NewFakeGateway()
	p1 := gw.AddProject("inbox")
	gw.AddTask(p1.ID, "task", false)
	st := loggedIn(t, gw, nil)
	ctx := context.Background()

	st.RefreshProjects(ctx)
	st.SetCriteria(view.Criteria{Query: "q", Filter: view.FilterDone, Sort: view.SortTitle})

	st.Logout()
	assert.False(t, st.Authenticated())
	assert.Empty(t, st.Projects())
	assert.Empty(t, st.Tasks())
	assert.Zero(t, st.Selected())
	assert.Equal(t, view.DefaultCriteria(), st.Criteria())
	assert.NoError(t, st.Err())
	assert.Empty(t, st.OK())
}

func TestClearCriteria(t *testing.T) {
	gw := testutil.NewFakeGateway()
	st := state.New(gw, nil, nil, nil)
	st.SetCriteria(view.Criteria{Query: "milk", Filter: view.FilterActive, Sort: view.SortOldest})

	st.ClearCriteria()
	assert.Equal(t, view.DefaultCriteria(), st.Criteria())
	assert.Equal(t, "Cleared filters.", st.OK())
}

func TestProgress(t *testing.T) {
	gw := testutil.NewFakeGateway()
	p1 := gw.AddProject("inbox")
	gw.AddTask(p1.ID, "a", true)
	gw.AddTask(p1.ID, "b", false)
	gw.AddTask(p1.ID, "c", true)
	st := loggedIn(t, gw, nil)

	done, total, pct := st.Progress()
	assert.Zero(t, done)
	assert.Zero(t, total)
	assert.Zero(t, pct)

	st.RefreshProjects(context.Background())
	done, total, pct = st.Progress()
	assert.Equal(t, 2, done)
	assert.Equal(t, 3, total)
	assert.Equal(t, 66, pct)
}

func TestVisibleTasksApplyCriteria(t *testing.T) {
	gw := testutil.NewFakeGateway()
	p1 := gw.AddProject("inbox")
	gw.AddTask(p1.ID, "buy milk", false)
	gw.AddTask(p1.ID, "walk dog", true)
	gw.AddTask(p1.ID, "drink milk", false)
	st := loggedIn(t, gw, nil)
	ctx := context.Background()

	st.RefreshProjects(ctx)
	st.SetCriteria(view.Criteria{Query: "milk", Filter: view.FilterActive, Sort: view.SortOldest})

	assert.Equal(t, []int{1, 3}, taskIDs(st.VisibleTasks()))
	// Raw cache stays untouched.
	assert.Equal(t, []int{1, 2, 3}, taskIDs(st.Tasks()))
}

func TestFreshAccountLifecycle(t *testing.T) {
	gw := testutil.NewFakeGateway()
	st := loggedIn(t, gw, nil)
	ctx := context.Background()

	st.RefreshProjects(ctx)
	require.NoError(t, st.Err())
	require.Empty(t, st.Projects())
	require.Zero(t, st.Selected())

	st.CreateProject(ctx, "Home")
	require.NoError(t, st.Err())
	home, ok := st.SelectedProject()
	require.True(t, ok)
	assert.Equal(t, "Home", home.Name)

	st.CreateTask(ctx, "Buy milk")
	require.NoError(t, st.Err())
	require.Len(t, st.Tasks(), 1)

	st.ToggleTask(ctx, st.Tasks()[0].ID)
	require.NoError(t, st.Err())

	st.SetCriteria(view.Criteria{Filter: view.FilterDone, Sort: view.SortNewest})
	visible := st.VisibleTasks()
	require.Len(t, visible, 1)
	assert.Equal(t, "Buy milk", visible[0].Title)
	assert.True(t, visible[0].Done)
}

// slowListGateway delays ListTasks for one project until released, to model
// a refetch overtaken by a selection change.
type slowListGateway struct {
	*testutil.FakeGateway
	slowPID int
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (g *slowListGateway) ListTasks(ctx context.Context, projectID int) ([]service.Task, error) {
	if projectID == g.slowPID {
		g.once.Do(func() { close(g.started) })
		<-g.release
	}
	return g.FakeGateway.ListTasks(ctx, projectID)
}

func TestStaleTaskRefetchIsDiscarded(t *testing.T) {
	fake := testutil.NewFakeGateway()
	p1 := fake.AddProject("inbox")
	p2 := fake.AddProject("work")
	fake.AddTask(p1.ID, "old stuff", false)
	fake.AddTask(p2.ID, "new stuff", false)

	gw := &slowListGateway{
		FakeGateway: fake,
		slowPID:     p1.ID,
		started:     make(chan struct{}),
		release:     make(chan struct{}),
	}
	st := loggedIn(t, gw, nil)
	ctx := context.Background()

	// Select p1 without triggering its slow fetch yet: RefreshProjects
	// auto-selects p1 and its fetch blocks, so run it in the background.
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		st.RefreshProjects(ctx)
	}()
	<-gw.started

	// Selection moves on while the p1 fetch is in flight.
	st.SelectProject(ctx, p2.ID)
	require.NoError(t, st.Err())
	require.Equal(t, []int{2}, taskIDs(st.Tasks()))

	close(gw.release)
	wg.Wait()

	// The late p1 result must not clobber p2's tasks.
	assert.Equal(t, p2.ID, st.Selected())
	assert.Equal(t, []int{2}, taskIDs(st.Tasks()))
}
