package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/esimov/seamcarver"
	"github.com/esimov/seamcarver/utils"
	"github.com/rs/zerolog"
)

const HelpBanner = `
┌─┐┌─┐┌─┐┌┬┐┌─┐┌─┐┬─┐┬  ┬┌─┐┬─┐
└─┐├┤ ├─┤││││  ├─┤├┬┘└┐┌┘├┤ ├┬┘
└─┘└─┘┴ ┴┴ ┴└─┘┴ ┴┴└─ └┘ └─┘┴└─

Content aware image resize by seam carving.
    Version: %s

`

// pipeName is the file name that indicates stdin/stdout is being used.
const pipeName = "-"

// Version indicates the current build version.
var Version string

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fset := flag.NewFlagSet("seamcarver", flag.ContinueOnError)
	var (
		source      = fset.String("in", pipeName, "Source")
		destination = fset.String("out", pipeName, "Destination")
		width       = fset.Int("width", 0, "Number of columns to remove")
		height      = fset.Int("height", 0, "Number of rows to remove")
		percentage  = fset.Bool("perc", false, "Interpret -width and -height as percentages")
		showEnergy  = fset.Bool("energy", false, "Output the energy map instead of resizing")
		showSeam    = fset.Bool("seam", false, "Output the image with its lowest energy seam marked")
		seamColor   = fset.String("color", seamcarver.DefaultSeamColor, "Seam color used with -seam")
		workers     = fset.Int("conc", runtime.NumCPU(), "Number of files to process concurrently")
		logLevel    = fset.String("log", "info", "Log level (debug, info, warn, error)")
		configFile  = fset.String("config", "", "Optional config file providing flag defaults")
	)
	fset.Usage = func() {
		fmt.Fprintf(os.Stderr, HelpBanner, Version)
		fset.PrintDefaults()
	}
	if err := fset.Parse(args); err != nil {
		return 2
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()

	if err := loadConfig(fset, *configFile); err != nil {
		logger.Error().Err(err).Msg("could not load the configuration")
		return 1
	}
	logger = logger.Level(parseLevel(*logLevel))

	if *width <= 0 && *height <= 0 && !*showEnergy && !*showSeam {
		fset.Usage()
		fmt.Fprintln(os.Stderr, utils.DecorateText(
			"\nPlease provide a width or height reduction for image rescaling!", utils.ErrorMessage,
		))
		return 1
	}

	proc := &seamcarver.Processor{
		WidthReduction:  *width,
		HeightReduction: *height,
		Percentage:      *percentage,
		ShowEnergy:      *showEnergy,
		ShowSeam:        *showSeam,
		SeamColor:       *seamColor,
		Logger:          logger,
	}
	op := &seamcarver.Ops{
		Src:      *source,
		Dst:      *destination,
		PipeName: pipeName,
		Workers:  *workers,
	}

	// Cancel the carving on CTRL-C; the spinner restores the cursor when stopped.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	spinner := utils.NewSpinner(fmt.Sprintf("%s %s",
		utils.DecorateText("⚡ SEAMCARVER", utils.StatusMessage),
		utils.DecorateText("⇢ resizing image (be patient, it may take a while)...", utils.DefaultMessage),
	), time.Millisecond*80, true)

	now := time.Now()
	spinner.Start()
	err := proc.Execute(ctx, op)
	if err != nil {
		spinner.StopMsg = fmt.Sprintf("%s %s %s\n",
			utils.DecorateText("⚡ SEAMCARVER", utils.StatusMessage),
			utils.DecorateText("resizing image failed...", utils.DefaultMessage),
			utils.DecorateText("✘", utils.ErrorMessage),
		)
		spinner.Stop()
		fmt.Fprintf(os.Stderr, "%s%s",
			utils.DecorateText("\nError resizing the image: ", utils.ErrorMessage),
			utils.DecorateText(fmt.Sprintf("\n\tReason: %v\n", err), utils.DefaultMessage),
		)
		return 1
	}

	spinner.StopMsg = fmt.Sprintf("%s %s %s\n",
		utils.DecorateText("⚡ SEAMCARVER", utils.StatusMessage),
		utils.DecorateText("⇢", utils.DefaultMessage),
		utils.DecorateText("the image has been resized successfully ✔", utils.SuccessMessage),
	)
	spinner.Stop()

	if *destination != pipeName {
		fmt.Fprintf(os.Stderr, "\nThe image has been saved as: %s\n",
			utils.DecorateText(filepath.Base(*destination), utils.SuccessMessage),
		)
	}
	fmt.Fprintf(os.Stderr, "\nExecution time: %s\n",
		utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage),
	)
	return 0
}
