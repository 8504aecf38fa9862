package patch

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/friendsincode/skald/entities"
	"github.com/friendsincode/skald/mode"
	"github.com/friendsincode/skald/pipeline"
)

type fixedElement struct {
	recs []*entities.Recording
	err  error
}

func (e *fixedElement) Name() string { return "fixed" }

func (e *fixedElement) Inputs() []entities.Kind { return nil }

func (e *fixedElement) Outputs() []entities.Kind { return []entities.Kind{entities.KindRecording} }

func (e *fixedElement) Read(pctx *pipeline.Context, inputs [][]entities.Item) ([]entities.Item, error) {
	if e.err != nil {
		return nil, e.err
	}
	pctx.AddExplanation("picked %d fixed recordings", len(e.recs))
	return pipeline.RecordingItems(e.recs), nil
}

type testPatch struct {
	slug    string
	element pipeline.Element
	wireErr error
}

func (p *testPatch) Slug() string { return p.slug }

func (p *testPatch) Description() string { return "test patch" }

func (p *testPatch) Create(pctx *pipeline.Context) (*pipeline.Node, error) {
	if p.wireErr != nil {
		return nil, p.wireErr
	}
	return pipeline.NewNode(p.element), nil
}

func makeRecordings(n int) []*entities.Recording {
	recs := make([]*entities.Recording, n)
	for i := range recs {
		recs[i] = &entities.Recording{
			Entity: entities.NewEntity(fmt.Sprintf("00000000-0000-0000-0000-%012d", i), fmt.Sprintf("track %d", i)),
		}
	}
	return recs
}

func TestRegistryLastWins(t *testing.T) {
	reg := NewRegistry()
	first := &testPatch{slug: "dup"}
	second := &testPatch{slug: "dup"}
	reg.Register(first)
	reg.Register(second)

	got, err := reg.Get("dup")
	if err != nil {
		t.Fatalf("get patch: %v", err)
	}
	if got != second {
		t.Fatal("expected last registered patch to win")
	}
}

func TestRegistryUnknownSlug(t *testing.T) {
	reg := NewRegistry()
	if _, err := reg.Get("missing"); err == nil {
		t.Fatal("expected error for unknown slug")
	}
}

func TestRunnerGeneratesPlaylist(t *testing.T) {
	p := &testPatch{slug: "fixed-radio", element: &fixedElement{recs: makeRecordings(5)}}
	runner := NewRunner(zerolog.Nop())

	playlist, err := runner.Generate(context.Background(), p, RunOptions{Mode: mode.Easy, UserName: "alice"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(playlist.Recordings) != 5 {
		t.Fatalf("expected 5 recordings, got %d", len(playlist.Recordings))
	}
	if playlist.PatchSlug != "fixed-radio" {
		t.Fatalf("unexpected patch slug %q", playlist.PatchSlug)
	}
	if playlist.UserName != "alice" {
		t.Fatalf("unexpected user name %q", playlist.UserName)
	}
	if playlist.Description == "" {
		t.Fatal("expected explanations to become the playlist description")
	}
}

func TestRunnerReportsNoData(t *testing.T) {
	p := &testPatch{slug: "dry", element: &fixedElement{err: pipeline.ErrNoData}}
	runner := NewRunner(zerolog.Nop())

	_, err := runner.Generate(context.Background(), p, RunOptions{})
	if !errors.Is(err, pipeline.ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}

func TestRunnerReportsHardFailure(t *testing.T) {
	p := &testPatch{slug: "broken", element: &fixedElement{err: errors.New("backend down")}}
	runner := NewRunner(zerolog.Nop())

	_, err := runner.Generate(context.Background(), p, RunOptions{})
	var perr *pipeline.Error
	if !errors.As(err, &perr) {
		t.Fatalf("expected pipeline error, got %v", err)
	}
}

func TestRunnerReportsCreateFailure(t *testing.T) {
	p := &testPatch{slug: "unwirable", wireErr: errors.New("bad prompt")}
	runner := NewRunner(zerolog.Nop())

	if _, err := runner.Generate(context.Background(), p, RunOptions{}); err == nil {
		t.Fatal("expected create failure to propagate")
	}
}

func TestRunnerSeedReproducible(t *testing.T) {
	p := &testPatch{slug: "seeded", element: &fixedElement{recs: makeRecordings(3)}}
	runner := NewRunner(zerolog.Nop())

	first, err := runner.Generate(context.Background(), p, RunOptions{Seed: 42})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	second, err := runner.Generate(context.Background(), p, RunOptions{Seed: 42})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(first.Recordings) != len(second.Recordings) {
		t.Fatal("expected identical runs for identical seeds")
	}
	for i := range first.Recordings {
		if first.Recordings[i].MBID != second.Recordings[i].MBID {
			t.Fatalf("recordings diverged at %d", i)
		}
	}
}
