package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"go.uber.org/zap"

	"github.com/NimbleMarkets/ntcharts/canvas/runes"
	"github.com/NimbleMarkets/ntcharts/linechart/streamlinechart"

	"github.com/gwillem/autocreator/pkg/controller"
	"github.com/gwillem/autocreator/pkg/log"
	"github.com/gwillem/autocreator/pkg/menu"
	"github.com/gwillem/autocreator/pkg/routine"
	"github.com/gwillem/autocreator/pkg/session"
)

type RecordCommand struct {
	Sim      bool          `long:"sim" description:"Use simulated motors instead of the servo bus"`
	Out      string        `short:"o" long:"out" default:"routine.json" description:"Routine file written on save (.json or .yaml)"`
	Interval time.Duration `long:"interval" default:"250ms" description:"Button poll interval"`
	MoveStep int           `long:"move-step" default:"10" description:"Preview distance per step in mm"`
	TurnStep int           `long:"turn-step" default:"1" description:"Preview angle per step in degrees"`
}

const (
	headerHeight = 2 // title + blank line
	screenHeight = 3 // robot screen box
	tableRows    = 8 // recent actions shown
	footerHeight = 7 // log box height
	maxLogs      = 5 // number of log messages to show
	borderSize   = 2 // chart border
	seriesName   = "value"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	chartStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	screenStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("10")).Padding(0, 1)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

var kindColors = map[routine.Kind]string{
	routine.Move: "46",  // green
	routine.Turn: "51",  // cyan
	routine.Wait: "226", // yellow
}

type recordModel struct {
	rec      *session.Recorder
	keypad   *controller.Keypad
	screen   *controller.Screen
	out      string
	chart    *streamlinechart.Model
	width    int
	height   int
	line     string        // current robot screen text
	state    session.State // last recorder snapshot
	logs     []string      // last N log messages
	quitting bool
}

func (m *recordModel) addLog(msg string) {
	m.logs = append(m.logs, msg)
	if len(m.logs) > maxLogs {
		m.logs = m.logs[len(m.logs)-maxLogs:]
	}
}

// Messages from the recorder
type stateMsg session.State
type logMsg string
type screenMsg string

func waitForState(rec *session.Recorder) tea.Cmd {
	return func() tea.Msg {
		return stateMsg(<-rec.States())
	}
}

func waitForLog(rec *session.Recorder) tea.Cmd {
	return func() tea.Msg {
		return logMsg(<-rec.Logs())
	}
}

func waitForScreen(s *controller.Screen) tea.Cmd {
	return func() tea.Msg {
		return screenMsg(<-s.Lines())
	}
}

func (m *recordModel) chartSize() (width, height int) {
	if m.width == 0 || m.height == 0 {
		return 80, 10
	}
	width = m.width - borderSize - 2
	if width < 40 {
		width = 40
	}
	height = m.height - headerHeight - screenHeight - (tableRows + 4) - footerHeight - borderSize
	if height < 6 {
		height = 6
	}
	return width, height
}

func (m *recordModel) resizeChart() {
	w, h := m.chartSize()
	m.chart.Resize(w, h)
}

func initialRecordModel(rec *session.Recorder, keypad *controller.Keypad, screen *controller.Screen, out string) recordModel {
	chart := streamlinechart.New(80, 10,
		streamlinechart.WithYRange(routine.MinValue, routine.MaxValue),
	)
	chart.SetDataSetStyles(seriesName, runes.ThinLineStyle,
		lipgloss.NewStyle().Foreground(lipgloss.Color("12")))

	return recordModel{
		rec:    rec,
		keypad: keypad,
		screen: screen,
		out:    out,
		chart:  &chart,
	}
}

func (m recordModel) Init() tea.Cmd {
	return tea.Batch(
		waitForState(m.rec),
		waitForLog(m.rec),
		waitForScreen(m.screen),
	)
}

func (m recordModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeChart()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
		m.keypad.Key(msg.String())

	case stateMsg:
		m.state = session.State(msg)
		m.chart.PushDataSet(seriesName, float64(m.state.Value))
		m.chart.DrawAll()
		return m, waitForState(m.rec)

	case logMsg:
		for _, line := range strings.Split(string(msg), "\n") {
			m.addLog(line)
		}
		return m, waitForLog(m.rec)

	case screenMsg:
		m.line = string(msg)
		return m, waitForScreen(m.screen)
	}

	return m, nil
}

func (m recordModel) View() string {
	if m.quitting {
		return "Recording stopped.\n"
	}

	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Autonomous Creator"))
	sb.WriteString(fmt.Sprintf(" - %d action(s), saving to %s", len(m.state.Actions), m.out))
	sb.WriteString("\n\n")

	sb.WriteString(screenStyle.Render(m.line))
	sb.WriteString("\n")

	sb.WriteString(chartStyle.Render(m.chart.View()))
	sb.WriteString("\n")

	sb.WriteString(renderActions(m.state.Actions))
	sb.WriteString("\n")

	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(max(m.width-4, 20))

	var logLines string
	if len(m.logs) == 0 {
		logLines = statusStyle.Render("←/h L1   →/l R1   enter R2   s L2   q quit")
	} else {
		logLines = strings.Join(m.logs, "\n")
	}
	sb.WriteString(logStyle.Render(logLines))
	sb.WriteString("\n")

	return sb.String()
}

// renderActions shows the most recent actions as a table.
func renderActions(actions []routine.Action) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	first := 0
	if len(actions) > tableRows {
		first = len(actions) - tableRows
	}
	shown := actions[first:]

	rows := make([][]string, 0, len(shown))
	for i, a := range shown {
		rows = append(rows, []string{
			strconv.Itoa(first + i + 1),
			a.Kind.Label(),
			strconv.Itoa(a.Value),
			strings.Join(a.Args, " "),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(statusStyle).
		Headers("#", "Action", "Value", "Args").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 1 && row >= 0 && row < len(shown) {
				return cellStyle.Foreground(lipgloss.Color(kindColors[shown[row].Kind]))
			}
			return cellStyle
		})
	return t.Render()
}

func (c *RecordCommand) Execute(args []string) error {
	cfg := loadConfig()

	if err := log.InitFileLogger(opts.LogFile, opts.Verbose); err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer log.Logger.Sync()

	drive, closeBus, err := openDrivetrain(cfg, c.Sim)
	if err != nil {
		return fmt.Errorf("create drivetrain: %w", err)
	}
	defer closeBus()

	keypad := controller.NewKeypad(controller.DefaultKeys)
	screen := controller.NewScreen()

	rec, err := session.NewRecorder(session.Config{
		Drive:    drive,
		UI:       menu.New(keypad, screen, menu.WithInterval(c.Interval)),
		Logger:   log.Logger,
		MoveStep: c.MoveStep,
		TurnStep: c.TurnStep,
		OnSave: func(f *routine.File) error {
			if err := routine.Save(c.Out, f); err != nil {
				return err
			}
			log.Logger.Info("routine saved", zap.String("path", c.Out), zap.Int("actions", len(f.Code)))
			return nil
		},
	})
	if err != nil {
		return fmt.Errorf("create recorder: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := rec.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Logger.Error("recorder stopped", zap.Error(err))
		}
	}()

	p := tea.NewProgram(initialRecordModel(rec, keypad, screen, c.Out), tea.WithAltScreen())
	_, runErr := p.Run()
	cancel()
	<-done
	if runErr != nil {
		return fmt.Errorf("run program: %w", runErr)
	}

	fmt.Printf("Recorded %d action(s). Session log: %s\n", rec.Log().Len(), opts.LogFile)
	return nil
}
