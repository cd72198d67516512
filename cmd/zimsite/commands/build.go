package commands

import (
	"context"

	"git.home.luguber.info/inful/zimsite/internal/build"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Overrides `embed:""`
}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	opts, err := LoadOptions(root.Config, b.Overrides)
	if err != nil {
		return err
	}
	return RunStages(context.Background(), opts, build.AllStages())
}

// ArticlesCmd implements the 'articles' command.
type ArticlesCmd struct {
	Overrides `embed:""`
}

func (a *ArticlesCmd) Run(_ *Global, root *CLI) error {
	opts, err := LoadOptions(root.Config, a.Overrides)
	if err != nil {
		return err
	}
	return RunStages(context.Background(), opts, build.Stages{Articles: true})
}

// MainPageCmd implements the 'mainpage' command.
type MainPageCmd struct {
	Overrides `embed:""`
}

func (m *MainPageCmd) Run(_ *Global, root *CLI) error {
	opts, err := LoadOptions(root.Config, m.Overrides)
	if err != nil {
		return err
	}
	return RunStages(context.Background(), opts, build.Stages{MainPage: true})
}

// RedirectCmd implements the 'redirect' command.
type RedirectCmd struct {
	Overrides `embed:""`
}

func (r *RedirectCmd) Run(_ *Global, root *CLI) error {
	opts, err := LoadOptions(root.Config, r.Overrides)
	if err != nil {
		return err
	}
	return RunStages(context.Background(), opts, build.Stages{Redirect: true})
}
