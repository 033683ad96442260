package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"ArticleBrowser/internal/domain"
	"ArticleBrowser/internal/usecase"
)

const browseHelp = `Commands:
  topic <text>        filter by text in title or summary (empty clears)
  level <token|all>   exact level filter, e.g. 2.5 or unknown
  min <n|->           lower range bound, "-" clears
  max <n|->           upper range bound, "-" clears
  next | prev         page forward or back
  page <n>            jump to page n
  lang <name>         load another language
  languages           list configured languages
  levels              list selectable levels
  dark                toggle dark mode
  help                show this text
  quit                leave`

// Browse runs a line-oriented session over in until quit or EOF. language, if
// set, is loaded first.
func (a *Application) Browse(ctx context.Context, in io.Reader, language string) error {
	live := a.newLiveSearch()
	defer live.Stop()

	var draft domain.Query
	if language != "" {
		if err := a.Load(ctx, language); err == nil {
			_ = a.Render()
		}
	}

	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !scanner.Scan() {
			break
		}

		cmd, arg := splitCommand(scanner.Text())
		switch cmd {
		case "":
			continue
		case "quit", "exit", "q":
			live.Flush()
			return nil
		case "help", "?":
			fmt.Fprintln(a.out, browseHelp)

		case "topic":
			draft.Topic = arg
			live.Submit(draft)
		case "level":
			level, err := usecase.ParseLevelFilter(arg)
			if err != nil {
				a.warn(err.Error())
				continue
			}
			draft.Level = level
			live.Submit(draft)
		case "min", "max":
			bound, err := usecase.ParseBound(arg)
			if err != nil {
				a.warn(err.Error())
				continue
			}
			if cmd == "min" {
				draft.LowBound = bound
			} else {
				draft.HighBound = bound
			}
			live.Submit(draft)

		case "next":
			live.Flush()
			a.navigate(a.session.Next(), "Already on the last page")
		case "prev":
			live.Flush()
			a.navigate(a.session.Prev(), "Already on the first page")
		case "page":
			live.Flush()
			n, err := strconv.Atoi(arg)
			if err != nil {
				a.warn(fmt.Sprintf("invalid page number %q", arg))
				continue
			}
			noop := fmt.Sprintf("Page %d is not available", n)
			if n == a.session.View().Page.Number {
				noop = fmt.Sprintf("Already on page %d", n)
			}
			a.navigate(a.session.GoTo(n), noop)

		case "lang", "language":
			live.Flush()
			if arg == "" {
				a.warn("usage: lang <name>")
				continue
			}
			if err := a.Load(ctx, arg); err == nil {
				draft = domain.Query{}
				_ = a.Render()
			}
		case "languages":
			a.info("Languages: " + strings.Join(a.Languages(), ", "))
		case "levels":
			live.Flush()
			labels := make([]string, 0, len(a.session.View().Levels))
			for _, opt := range a.session.View().Levels {
				labels = append(labels, opt.Label)
			}
			a.info("Levels: " + strings.Join(labels, ", "))
		case "dark":
			dark, err := a.ToggleDarkMode()
			if err != nil {
				a.notifier.Notify(domain.Notification{Message: err.Error(), Severity: domain.SeverityError})
			}
			a.info(fmt.Sprintf("Dark mode %s", onOff(dark)))
			_ = a.Render()

		default:
			a.warn(fmt.Sprintf("unknown command %q, type help", cmd))
		}
	}

	live.Flush()
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read commands: %w", err)
	}
	return nil
}

func (a *Application) navigate(changed bool, noop string) {
	if !changed {
		a.info(noop)
		return
	}
	_ = a.Render()
}

func (a *Application) info(msg string) {
	a.notifier.Notify(domain.Notification{Message: msg, Severity: domain.SeverityInfo})
}

func (a *Application) warn(msg string) {
	a.notifier.Notify(domain.Notification{Message: msg, Severity: domain.SeverityWarning})
}

func splitCommand(line string) (string, string) {
	line = strings.TrimSpace(line)
	cmd, arg, _ := strings.Cut(line, " ")
	return strings.ToLower(cmd), strings.TrimSpace(arg)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
