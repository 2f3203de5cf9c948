package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aretw0/polezero"
	"github.com/aretw0/polezero/internal/presentation/graph"
	"github.com/aretw0/polezero/internal/presentation/tui"
	"github.com/aretw0/polezero/pkg/domain"
	"github.com/aretw0/polezero/pkg/ports"
)

// EditOptions configures an interactive edit session.
type EditOptions struct {
	In  io.Reader
	Out io.Writer
	// Interactive prints the banner, prompts and help hints.
	Interactive bool
}

// ErrUnknownCommand is returned for an unrecognised editor command.
var ErrUnknownCommand = errors.New("unknown command")

const editHelp = `Commands:
  show                              print the configuration
  plot                              print a Mermaid pole-zero chart
  add <pole|zero>                   append a point at (0, 0)
  set <pole|zero> <i> <mag|phase> <value>
                                    set one coordinate
  rm <pole|zero> <i>                remove a point
  publish                           save and print the navigation target
  close                             discard changes and exit
`

// editSession holds the state of one RunEdit call.
type editSession struct {
	editor   *polezero.Editor
	src      ports.ConfigSource
	id       string
	out      io.Writer
	renderer *tui.Renderer
}

// RunEdit opens a draft hydrated from src and applies commands read from
// opts.In until "publish", "close" or end of input. Only "publish" writes
// back to src; every other exit discards the draft.
func RunEdit(ctx context.Context, editor *polezero.Editor, src ports.ConfigSource, opts EditOptions) error {
	id, cfg, err := editor.Open(ctx, src)
	if err != nil {
		return err
	}
	s := &editSession{
		editor:   editor,
		src:      src,
		id:       id,
		out:      opts.Out,
		renderer: tui.NewRenderer(opts.Out),
	}

	if opts.Interactive {
		tui.PrintBanner(opts.Out)
		fmt.Fprintln(opts.Out, "Type 'help' for commands.")
	}
	s.show(cfg)

	readCtx, stopReading := context.WithCancel(ctx)
	defer stopReading()

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(opts.In)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-readCtx.Done():
				return
			}
		}
	}()

	for {
		if opts.Interactive {
			fmt.Fprint(opts.Out, "> ")
		}

		var line string
		var ok bool
		select {
		case <-ctx.Done():
			s.discard()
			return ctx.Err()
		case line, ok = <-lines:
		}
		if !ok {
			s.discard()
			return nil
		}

		done, err := s.exec(ctx, strings.Fields(line))
		if err != nil {
			fmt.Fprintf(opts.Out, "Error: %v\n", err)
			if opts.Interactive && errors.Is(err, ErrUnknownCommand) {
				fmt.Fprint(opts.Out, editHelp)
			}
			continue
		}
		if done {
			return nil
		}
	}
}

// exec runs one command and reports whether the session is over.
func (s *editSession) exec(ctx context.Context, args []string) (bool, error) {
	if len(args) == 0 {
		return false, nil
	}

	switch strings.ToLower(args[0]) {
	case "help", "?":
		fmt.Fprint(s.out, editHelp)

	case "show", "ls":
		cfg, err := s.editor.Draft(ctx, s.id)
		if err != nil {
			return false, err
		}
		s.show(cfg)

	case "plot":
		cfg, err := s.editor.Draft(ctx, s.id)
		if err != nil {
			return false, err
		}
		fmt.Fprint(s.out, graph.GenerateMermaid(cfg, nil))

	case "add":
		if len(args) != 2 {
			return false, fmt.Errorf("usage: add <pole|zero>")
		}
		kind, err := domain.ParseKind(args[1])
		if err != nil {
			return false, err
		}
		cfg, err := s.editor.AddPoint(ctx, s.id, kind)
		if err != nil {
			return false, err
		}
		s.show(cfg)

	case "set":
		if len(args) != 5 {
			return false, fmt.Errorf("usage: set <pole|zero> <index> <mag|phase> <value>")
		}
		kind, index, err := pointArgs(args[1], args[2])
		if err != nil {
			return false, err
		}
		axis, err := domain.ParseAxis(args[3])
		if err != nil {
			return false, err
		}
		cfg, err := s.editor.SetCoordinate(ctx, s.id, kind, index, axis, args[4])
		if err != nil {
			return false, err
		}
		s.show(cfg)

	case "rm", "remove":
		if len(args) != 3 {
			return false, fmt.Errorf("usage: rm <pole|zero> <index>")
		}
		kind, index, err := pointArgs(args[1], args[2])
		if err != nil {
			return false, err
		}
		cfg, err := s.editor.RemovePoint(ctx, s.id, kind, index)
		if err != nil {
			return false, err
		}
		s.show(cfg)

	case "publish", "update":
		return true, s.publish(ctx)

	case "close", "q", "quit", "exit":
		s.discard()
		fmt.Fprintln(s.out, "Closed without publishing.")
		return true, nil

	default:
		return false, fmt.Errorf("%w: %q", ErrUnknownCommand, args[0])
	}
	return false, nil
}

func (s *editSession) publish(ctx context.Context) error {
	location, err := s.editor.Publish(ctx, s.id, s.src)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, location)
	return nil
}

func (s *editSession) discard() {
	_ = s.editor.Close(context.Background(), s.id)
}

func (s *editSession) show(cfg domain.Configuration) {
	out, err := s.renderer.Configuration(cfg)
	if err != nil {
		out = tui.Markdown(cfg)
	}
	fmt.Fprint(s.out, out)
}

func pointArgs(kindArg, indexArg string) (domain.Kind, int, error) {
	kind, err := domain.ParseKind(kindArg)
	if err != nil {
		return "", 0, err
	}
	index, err := strconv.Atoi(indexArg)
	if err != nil {
		return "", 0, fmt.Errorf("index must be an integer, got %q", indexArg)
	}
	return kind, index, nil
}
