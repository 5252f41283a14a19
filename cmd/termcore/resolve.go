package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/termcore/internal/input"
	"github.com/dshills/termcore/internal/input/action"
	"github.com/dshills/termcore/internal/input/key"
	"github.com/dshills/termcore/internal/input/matchmode"
	"github.com/dshills/termcore/internal/input/mouse"
)

type resolveFlags struct {
	key   string
	char  string
	mouse string
	mods  string
	modes string
}

func newResolveCmd(g *globalFlags) *cobra.Command {
	f := &resolveFlags{}
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Print the actions bound to an input event",
		Example: `  termcore resolve --key Enter --mods Alt
  termcore resolve --char c --mods Control,Shift --mode Select
  termcore resolve --mouse WheelUp --mode Alt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ev, err := f.event()
			if err != nil {
				return err
			}
			modes, err := parseModes(f.modes)
			if err != nil {
				return err
			}

			doc := g.load(cmd)
			d := input.NewDispatcher(input.Static(doc), input.WithLogger(g.logger(cmd)), input.WithModes(modes))
			defer d.Close()

			out := cmd.OutOrStdout()
			actions, ok := d.Handle(ev)
			if !ok {
				_, err := fmt.Fprintf(out, "%s: no binding\n", ev)
				return err
			}
			for _, a := range actions {
				if _, err := fmt.Fprintln(out, action.String(a)); err != nil {
					return err
				}
			}
			return nil
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.key, "key", "", "named key, e.g. Enter or F3")
	fl.StringVar(&f.char, "char", "", "character key, e.g. c or Plus")
	fl.StringVar(&f.mouse, "mouse", "", "mouse button, e.g. Left or WheelUp")
	fl.StringVar(&f.mods, "mods", "", "modifiers, e.g. Control,Shift")
	fl.StringVar(&f.modes, "mode", "", "active terminal modes, e.g. Alt|Select")
	cmd.MarkFlagsMutuallyExclusive("key", "char", "mouse")
	cmd.MarkFlagsOneRequired("key", "char", "mouse")
	return cmd
}

func (f *resolveFlags) event() (input.Event, error) {
	mods, err := key.ParseModifiers(f.mods)
	if err != nil {
		return input.Event{}, err
	}

	switch {
	case f.mouse != "":
		b, err := mouse.ButtonFromName(f.mouse)
		if err != nil {
			return input.Event{}, err
		}
		return input.MouseEvent(mods, b), nil
	case f.char != "":
		_, r, isChar, err := key.ParseTrigger(f.char)
		if err != nil {
			return input.Event{}, err
		}
		if !isChar {
			return input.Event{}, fmt.Errorf("%q is a named key, use --key", f.char)
		}
		return input.CharEvent(mods, r), nil
	case f.key != "":
		k, _, isChar, err := key.ParseTrigger(f.key)
		if err != nil {
			return input.Event{}, err
		}
		if isChar {
			return input.Event{}, fmt.Errorf("%q is a character, use --char", f.key)
		}
		return input.KeyEvent(mods, k), nil
	default:
		return input.Event{}, errors.New("one of --key, --char or --mouse is required")
	}
}

// parseModes reads a list of active mode flags separated by "|" or ",".
func parseModes(s string) (matchmode.Flags, error) {
	var flags matchmode.Flags
	for _, name := range strings.FieldsFunc(s, func(r rune) bool { return r == '|' || r == ',' }) {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		flag, ok := matchmode.FlagFromName(name)
		if !ok {
			return 0, fmt.Errorf("unknown mode %q", name)
		}
		flags = flags.With(flag)
	}
	return flags, nil
}
