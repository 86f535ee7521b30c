// Package main provides the entry point for the pisay CLI.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/dgnsrekt/pisay/internal/engine"
	"github.com/dgnsrekt/pisay/internal/speech"
)

var (
	// Version as provided by goreleaser.
	Version = ""
	// CommitSHA as provided by goreleaser.
	CommitSHA = ""

	configFile string
	device     string
	simulate   bool
	engineName string
	language   string
	quiet      bool

	rootCmd = &cobra.Command{
		Use:   "pisay [TEXT...]",
		Short: "Speak text through your Raspberry Pi's audio output",
		Long: paragraph(
			fmt.Sprintf("\nSpeak text on the command line, %s. pisay picks the first installed speech engine (espeak, pico2wave, or the builtin SVOX Pico library) and pipes the audio to aplay.", keyword("no setup required")),
		),
		Example: paragraph("pisay \"Hello there\"\npisay --device plughw:0,0 \"Dinner is ready\"\npisay --engine pico --simulate \"testing\"\nfortune | pisay -"),
		SilenceErrors:    false,
		SilenceUsage:     true,
		TraverseChildren: true,
		Args:             cobra.ArbitraryArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return validateOptions(cmd)
		},
		RunE: execute,
	}
)

func validateOptions(*cobra.Command) error {
	// grab config values from Viper
	device = viper.GetString("device")
	engineName = viper.GetString("engine")
	language = viper.GetString("lang")
	quiet = viper.GetBool("quiet")

	// Fail fast on a preference that names nothing. Availability is
	// probed later; an unavailable explicit choice is fatal there too.
	if engineName != "" {
		names := engine.NewRegistry(engine.Config{}).Names()
		known := false
		for _, n := range names {
			if n == engineName {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("%w: %q (supported: %s)",
				speech.ErrUnknownEngine, engineName, strings.Join(names, ", "))
		}
	}

	amp := viper.GetInt("espeak.amplitude")
	if amp < 0 || amp > 200 {
		return fmt.Errorf("espeak amplitude must be between 0 and 200, got %d", amp)
	}
	return nil
}

func stdinIsPipe() (bool, error) {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false, fmt.Errorf("unable to stat stdin: %w", err)
	}
	if stat.Mode()&os.ModeCharDevice == 0 || stat.Size() > 0 {
		return true, nil
	}
	return false, nil
}

// textFromArgs joins the positional words, or reads stdin when the text is
// piped or given as "-".
func textFromArgs(args []string) (string, error) {
	if len(args) == 1 && args[0] == "-" {
		return readStdin()
	}
	if len(args) == 0 {
		if yes, err := stdinIsPipe(); err != nil {
			return "", err
		} else if yes {
			return readStdin()
		}
		return "", nil
	}
	return strings.Join(args, " "), nil
}

func readStdin() (string, error) {
	b, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("unable to read from stdin: %w", err)
	}
	return strings.TrimRight(string(b), "\n"), nil
}

func execute(cmd *cobra.Command, args []string) error {
	text, err := textFromArgs(args)
	if err != nil {
		return err
	}

	if !quiet && !simulate && term.IsTerminal(int(os.Stderr.Fd())) {
		printSafetyNotice()
	}

	dispatcher := speech.NewDispatcher(engine.NewRegistry(engineConfig()))
	return dispatcher.Speak(cmd.Context(), speech.Request{
		Text:     text,
		Device:   device,
		Engine:   engineName,
		Simulate: simulate,
	})
}

func engineConfig() engine.Config {
	return engine.Config{
		Language:  language,
		Amplitude: viper.GetInt("espeak.amplitude"),
		Speed:     viper.GetInt("espeak.speed"),
		TempDir:   viper.GetString("tempdir"),
	}
}

// printSafetyNotice reminds about speaker wiring before each audible run.
// A bare speaker on the GPIO header has cooked more than one board.
func printSafetyNotice() {
	fmt.Fprintln(os.Stderr, notice("Do NOT connect a low-impedance speaker directly to GPIO pins."))
	fmt.Fprintln(os.Stderr, subtle("Use USB audio, the headphone jack through an amplifier, or an I2S DAC/amp HAT. Silence this notice with --quiet."))
	fmt.Fprintln(os.Stderr)
}

func main() {
	closer, err := setupLog()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if err := rootCmd.Execute(); err != nil {
		_ = closer()
		os.Exit(speech.ExitCode(err))
	}
	_ = closer()
}

func init() {
	tryLoadConfigFromDefaultPlaces()
	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		Version = "unknown (built from source)"
	}
	rootCmd.Version = Version
	rootCmd.InitDefaultCompletionCmd()

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", fmt.Sprintf("config file (default %s)", viper.GetViper().ConfigFileUsed()))
	rootCmd.Flags().StringVarP(&device, "device", "D", "", "ALSA output device for aplay (e.g. plughw:0,0)")
	rootCmd.Flags().BoolVarP(&simulate, "simulate", "s", false, "report the intended action without producing audio")
	rootCmd.Flags().StringVarP(&engineName, "engine", "e", "", "speech engine to use (espeak, pico, builtin)")
	rootCmd.Flags().StringVarP(&language, "lang", "l", "", "voice/language code (e.g. en-US)")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress the wiring safety notice")

	// Config bindings
	_ = viper.BindPFlag("device", rootCmd.Flags().Lookup("device"))
	_ = viper.BindPFlag("engine", rootCmd.Flags().Lookup("engine"))
	_ = viper.BindPFlag("lang", rootCmd.Flags().Lookup("lang"))
	_ = viper.BindPFlag("quiet", rootCmd.Flags().Lookup("quiet"))

	viper.SetDefault("device", "")
	viper.SetDefault("engine", "")
	viper.SetDefault("lang", "")
	viper.SetDefault("quiet", false)
	viper.SetDefault("tempdir", "")
	viper.SetDefault("espeak.amplitude", 0)
	viper.SetDefault("espeak.speed", 0)

	rootCmd.AddCommand(configCmd, manCmd)
}

func tryLoadConfigFromDefaultPlaces() {
	scope := gap.NewScope(gap.User, "pisay")
	dirs, err := scope.ConfigDirs()
	if err != nil {
		fmt.Println("Could not find configuration directory.")
		os.Exit(1)
	}

	if c := os.Getenv("XDG_CONFIG_HOME"); c != "" {
		dirs = append([]string{filepath.Join(c, "pisay")}, dirs...)
	}

	if c := os.Getenv("PISAY_CONFIG_HOME"); c != "" {
		dirs = append([]string{c}, dirs...)
	}

	for _, v := range dirs {
		viper.AddConfigPath(v)
	}

	viper.SetConfigName("pisay")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("pisay")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Warn("Could not parse configuration file", "err", err)
		}
	}

	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug("Using configuration file", "path", viper.ConfigFileUsed())
		return
	}

	if viper.ConfigFileUsed() == "" {
		configFile = filepath.Join(dirs[0], "pisay.yml")
	}
	if err := ensureConfigFile(); err != nil {
		log.Error("Could not create default configuration", "error", err)
	}
}
