package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/gwillem/autocreator/pkg/codegen"
	"github.com/gwillem/autocreator/pkg/log"
	"github.com/gwillem/autocreator/pkg/routine"
)

type BuildCommand struct {
	Out  string `short:"o" long:"out" description:"Output file (default <output_dir>/autonomous-creator-output.cpp)"`
	Args struct {
		Routine string `positional-arg-name:"routine" required:"yes" description:"Routine file"`
	} `positional-args:"yes"`
}

func (c *BuildCommand) Execute(args []string) error {
	cfg := loadConfig()
	initConsoleLogging()
	defer log.Logger.Sync()

	f, err := routine.Load(c.Args.Routine)
	if err != nil {
		return fmt.Errorf("load routine: %w", err)
	}

	out := c.Out
	if out == "" {
		out = filepath.Join(cfg.OutputDir, codegen.OutputFile)
	}
	if err := writeProgram(out, func(w *bufio.Writer) error {
		return codegen.Generate(w, cfg, f.Code)
	}); err != nil {
		return fmt.Errorf("generate program: %w", err)
	}

	log.Logger.Info("program generated",
		zap.String("routine", c.Args.Routine),
		zap.String("output", out),
		zap.Int("actions", len(f.Code)))
	fmt.Println(successStyle.Render("Program written to " + out))
	return nil
}

func writeProgram(path string, gen func(*bufio.Writer) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	if err := gen(w); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return file.Close()
}
