package bootstrap

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/wss-platform/wss-backend/internal/logger"
)

func TestMain(m *testing.M) {
	logger.InitWithWriter(io.Discard)
	os.Exit(m.Run())
}

func TestRunSteps_StrictOrder(t *testing.T) {
	var order []string

	step := func(name string) Step {
		return Step{Name: name, Run: func(context.Context) error {
			order = append(order, name)
			return nil
		}}
	}

	err := runSteps(context.Background(), []Step{
		step("one"), step("two"), step("three"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(order) != 3 || order[0] != "one" || order[1] != "two" || order[2] != "three" {
		t.Fatalf("unexpected order: %v", order)
	}
}

func TestRunSteps_AbortsOnFirstFailure(t *testing.T) {
	var order []string

	steps := []Step{
		{Name: "ok", Run: func(context.Context) error {
			order = append(order, "ok")
			return nil
		}},
		{Name: "boom", Run: func(context.Context) error {
			order = append(order, "boom")
			return errors.New("exploded")
		}},
		{Name: "never", Run: func(context.Context) error {
			order = append(order, "never")
			return nil
		}},
	}

	err := runSteps(context.Background(), steps)
	if err == nil {
		t.Fatal("expected error")
	}
	if len(order) != 2 {
		t.Fatalf("steps after a failure must not run, got %v", order)
	}
}

func TestRunSteps_ErrorNamesStep(t *testing.T) {
	err := runSteps(context.Background(), []Step{
		{Name: "db:migrate", Run: func(context.Context) error {
			return errors.New("relation exists")
		}},
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if want := "bootstrap step db:migrate"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected %q in error, got: %v", want, err)
	}
}
