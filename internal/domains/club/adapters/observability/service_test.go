package observability_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	clubobs "github.com/fbraem/kwai/internal/domains/club/adapters/observability"
	"github.com/fbraem/kwai/internal/domains/club/domain"
	"github.com/fbraem/kwai/internal/domains/club/ports"
	"github.com/fbraem/kwai/internal/platform/observability"
	"github.com/fbraem/kwai/internal/shared/kernel"
	"github.com/fbraem/kwai/internal/shared/presenter"
)

type stubService struct{}

func (stubService) GetMembers(context.Context, ports.GetMembersCommand, presenter.AsyncPresenter[domain.Member]) error {
	return nil
}

func (stubService) GetMember(context.Context, ports.GetMemberCommand, presenter.Presenter[domain.Member]) error {
	return ports.ErrMemberNotFound
}

func (stubService) ImportMembers(_ context.Context, _ ports.ImportMembersCommand, p presenter.Presenter[ports.MemberImportResult]) error {
	p.Present(ports.MemberImportResult{Row: 1, Member: &domain.Member{}})
	p.Present(ports.MemberImportResult{Row: 2, Message: "unrecognized country: XX"})
	return nil
}

func TestServiceRecordsSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	service := clubobs.New(stubService{}, observability.WithTracer(provider.Tracer("test")))
	ctx := context.Background()

	err := service.GetMember(ctx, ports.GetMemberCommand{UUID: "x"}, presenter.Func[domain.Member](func(domain.Member) {}))
	require.ErrorIs(t, err, kernel.ErrNotFound)

	var rows []int
	err = service.ImportMembers(ctx, ports.ImportMembersCommand{Filename: "members.csv"},
		presenter.Func[ports.MemberImportResult](func(r ports.MemberImportResult) { rows = append(rows, r.Row) }))
	require.NoError(t, err)
	require.Equal(t, []int{1, 2}, rows)

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	require.Equal(t, "Service.GetMember", spans[0].Name())
	require.Equal(t, "Service.ImportMembers", spans[1].Name())
}
