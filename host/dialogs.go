package host

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"droppables/core"
)

// Input that dismisses a terminal dialog.
const cancelInput = "q"

// TerminalDialogs prompts on a terminal. Each field is asked on its own line;
// an empty answer keeps the default and "q" dismisses the dialog.
type TerminalDialogs struct {
	mu  sync.Mutex
	in  *bufio.Reader
	out io.Writer

	title  *color.Color
	label  *color.Color
	option *color.Color
}

// NewTerminalDialogs reads answers from in and writes prompts to out.
func NewTerminalDialogs(in io.Reader, out io.Writer) *TerminalDialogs {
	return &TerminalDialogs{
		in:     bufio.NewReader(in),
		out:    out,
		title:  color.New(color.FgHiWhite, color.Bold),
		label:  color.New(color.FgGreen),
		option: color.New(color.FgHiBlack),
	}
}

func (d *TerminalDialogs) Prompt(ctx context.Context, form core.Form) (map[string]string, bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	fmt.Fprintln(d.out, d.title.Sprint(form.Title))
	values := make(map[string]string, len(form.Fields))
	for _, f := range form.Fields {
		for i, o := range f.Options {
			fmt.Fprintf(d.out, "  %s %s\n", d.option.Sprintf("[%d]", i+1), o.Label)
		}
		fmt.Fprintf(d.out, "%s [%s]: ", d.label.Sprint(f.Label), f.Default)

		line, err := d.readLine(ctx)
		if errors.Is(err, io.EOF) {
			return nil, false, nil
		}
		if err != nil {
			return nil, false, err
		}
		if line == cancelInput {
			return nil, false, nil
		}
		values[f.Name] = resolveAnswer(f, line)
	}
	if form.Button != "" {
		fmt.Fprintln(d.out, d.option.Sprint(form.Button))
	}
	return values, true, nil
}

func (d *TerminalDialogs) Confirm(ctx context.Context, title, content string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	fmt.Fprintln(d.out, d.title.Sprint(title))
	fmt.Fprintf(d.out, "%s [y/N]: ", content)
	line, err := d.readLine(ctx)
	if errors.Is(err, io.EOF) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	switch strings.ToLower(line) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// readLine returns the next trimmed input line, or ctx's error if it is
// cancelled first.
func (d *TerminalDialogs) readLine(ctx context.Context) (string, error) {
	type result struct {
		line string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		line, err := d.in.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			ch <- result{err: err}
			return
		}
		ch <- result{line: strings.TrimSpace(line)}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		return r.line, r.err
	}
}

// resolveAnswer maps an option number or label to its value. Free fields
// take the input as is.
func resolveAnswer(f core.Field, line string) string {
	if line == "" {
		return f.Default
	}
	if len(f.Options) == 0 {
		return line
	}
	if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(f.Options) {
		return f.Options[n-1].Value
	}
	for _, o := range f.Options {
		if strings.EqualFold(line, o.Value) || strings.EqualFold(line, o.Label) {
			return o.Value
		}
	}
	return line
}

// ScriptedDialogs answers dialogs from a script, for unattended drops.
// Missing answers dismiss. Unset fields take their default.
type ScriptedDialogs struct {
	mu       sync.Mutex
	Answers  []map[string]string `yaml:"answers"`
	Confirms []bool              `yaml:"confirms"`
}

// LoadDialogScript reads a YAML script of the form
//
//	answers:
//	  - drop-style: horizontalLine
//	    elevation: "10"
//	  - null        # dismiss
//	confirms: [true]
func LoadDialogScript(path string) (*ScriptedDialogs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dialog script: %w", err)
	}
	var s ScriptedDialogs
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse dialog script %s: %w", path, err)
	}
	return &s, nil
}

func (s *ScriptedDialogs) Prompt(_ context.Context, form core.Form) (map[string]string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Answers) == 0 {
		return nil, false, nil
	}
	answer := s.Answers[0]
	s.Answers = s.Answers[1:]
	if answer == nil {
		return nil, false, nil
	}

	values := make(map[string]string, len(form.Fields))
	for _, f := range form.Fields {
		if v, ok := answer[f.Name]; ok {
			values[f.Name] = v
		} else {
			values[f.Name] = f.Default
		}
	}
	return values, true, nil
}

func (s *ScriptedDialogs) Confirm(context.Context, string, string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Confirms) == 0 {
		return false, nil
	}
	ok := s.Confirms[0]
	s.Confirms = s.Confirms[1:]
	return ok, nil
}
