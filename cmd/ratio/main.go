package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"canvas-cropper/internal/canvassize"
	"canvas-cropper/internal/logging"
	"canvas-cropper/internal/ratio"

	"github.com/rs/zerolog"
)

func main() {
	device := flag.String("device", "desktop", "Device class for the starting values: desktop or mobile")
	preset := flag.String("preset", "", "Aspect preset w:h (clears c and d)")
	a := flag.String("a", "", "Ratio width")
	b := flag.String("b", "", "Ratio height")
	c := flag.String("c", "", "Target width; d is solved")
	d := flag.String("d", "", "Target height; c is solved (ignored when -c is set)")
	verbose := flag.Bool("v", false, "Log solver warnings")

	flag.Parse()

	level := zerolog.ErrorLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	logging.Setup(os.Stderr, level)

	dev, err := canvassize.ParseDeviceClass(*device)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	form := ratio.NewForm(dev)
	if *preset != "" {
		w, h, ok := ratio.ParsePreset(*preset)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: bad preset %q, want w:h\n", *preset)
			os.Exit(2)
		}
		form.SelectPreset(w, h)
	}
	if *a != "" {
		form.Edit(ratio.FieldA, *a)
	}
	if *b != "" {
		form.Edit(ratio.FieldB, *b)
	}

	switch {
	case *c != "":
		err = form.Edit(ratio.FieldC, *c)
	case *d != "":
		err = form.Edit(ratio.FieldD, *d)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, message(err))
		os.Exit(1)
	}

	fmt.Printf("%s:%s = %s:%s\n", form.A, form.B, form.C, form.D)
	if res, ok := form.Resolution(); ok {
		fmt.Printf("Resolution: %s\n", res)
	}
}

// message turns a solver error into the text shown next to the form.
func message(err error) string {
	switch {
	case errors.Is(err, ratio.ErrDivideByZero):
		return "Denominator cannot be 0"
	case errors.Is(err, ratio.ErrNotANumber):
		return "Please enter valid numbers"
	default:
		return err.Error()
	}
}
