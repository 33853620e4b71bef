package dispatch

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quicksearch.dev/qsbp/internal/core/domain"
)

type fakeSource struct {
	perform func(ctx context.Context, q *domain.Query) domain.Outcome
}

func (f *fakeSource) Name() string                            { return "fake" }
func (f *fakeSource) IsValidSourceForQuery(*domain.Query) bool { return true }
func (f *fakeSource) PerformSearch(ctx context.Context, q *domain.Query) domain.Outcome {
	return f.perform(ctx, q)
}

func result(id string) domain.Result {
	return domain.Result{domain.KeyIdentifier: id}
}

func TestDispatcher_Search_Success(t *testing.T) {
	source := &fakeSource{perform: func(_ context.Context, q *domain.Query) domain.Outcome {
		return domain.Succeeded(result("file://" + q.Raw()))
	}}
	q := domain.NewQuery("hello")

	outcome, err := NewDispatcher(nil).Search(context.Background(), source, q)
	require.NoError(t, err)

	assert.True(t, outcome.OK())
	assert.True(t, q.Finished())
	require.Len(t, q.Results(), 1)
	assert.Equal(t, "file://hello", q.Results()[0].Identifier())
}

func TestDispatcher_Search_FailureKeepsPartialResults(t *testing.T) {
	source := &fakeSource{perform: func(context.Context, *domain.Query) domain.Outcome {
		return domain.Failed(assert.AnError, result("partial"))
	}}
	q := domain.NewQuery("x")

	outcome, err := NewDispatcher(nil).Search(context.Background(), source, q)
	require.NoError(t, err)

	assert.ErrorIs(t, outcome.Err, assert.AnError)
	assert.True(t, q.Finished())
	assert.Len(t, q.Results(), 1)
}

func TestDispatcher_Search_PanicStillFinishes(t *testing.T) {
	source := &fakeSource{perform: func(context.Context, *domain.Query) domain.Outcome {
		panic("boom")
	}}
	q := domain.NewQuery("x")

	outcome, err := NewDispatcher(nil).Search(context.Background(), source, q)
	require.NoError(t, err)

	assert.Error(t, outcome.Err)
	assert.Contains(t, outcome.Err.Error(), "boom")
	assert.True(t, q.Finished())
	assert.NotNil(t, q.Results())
	assert.Empty(t, q.Results())
}

func TestDispatcher_Search_NilResultsBecomeEmpty(t *testing.T) {
	source := &fakeSource{perform: func(context.Context, *domain.Query) domain.Outcome {
		return domain.Outcome{}
	}}
	q := domain.NewQuery("x")

	outcome, err := NewDispatcher(nil).Search(context.Background(), source, q)
	require.NoError(t, err)
	assert.NotNil(t, outcome.Results)
	assert.Empty(t, outcome.Results)
}

func TestDispatcher_Dispatch_ReturnsImmediately(t *testing.T) {
	release := make(chan struct{})
	source := &fakeSource{perform: func(context.Context, *domain.Query) domain.Outcome {
		<-release
		return domain.Succeeded(result("late"))
	}}
	q := domain.NewQuery("x")

	task := NewDispatcher(nil).Dispatch(context.Background(), source, q)
	assert.False(t, q.Finished())
	assert.Equal(t, "fake", task.Source())
	assert.Same(t, q, task.Query())

	close(release)

	select {
	case <-task.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("query never finished")
	}
	assert.Len(t, q.Results(), 1)
}

func TestTask_Cancel(t *testing.T) {
	source := &fakeSource{perform: func(ctx context.Context, q *domain.Query) domain.Outcome {
		<-ctx.Done()
		return domain.Failed(ctx.Err())
	}}
	q := domain.NewQuery("x")

	task := NewDispatcher(nil).Dispatch(context.Background(), source, q)
	task.Cancel()

	outcome, err := task.Wait(context.Background())
	require.NoError(t, err)
	assert.ErrorIs(t, outcome.Err, context.Canceled)
	assert.True(t, q.Finished())
}

func TestTask_Wait_ContextExpires(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	source := &fakeSource{perform: func(context.Context, *domain.Query) domain.Outcome {
		<-release
		return domain.Succeeded()
	}}

	task := NewDispatcher(nil).Dispatch(context.Background(), source, domain.NewQuery("x"))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := task.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestDispatcher_AlreadyFinishedQueryIsNotFinishedAgain(t *testing.T) {
	source := &fakeSource{perform: func(context.Context, *domain.Query) domain.Outcome {
		return domain.Succeeded(result("ignored"))
	}}
	q := domain.NewQuery("x")
	require.NoError(t, q.Finish())

	outcome, err := NewDispatcher(nil).Search(context.Background(), source, q)
	require.NoError(t, err)
	assert.Len(t, outcome.Results, 1)
	assert.Empty(t, q.Results())
}
