package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"wdctl/internal/config"
	"wdctl/internal/device"
	"wdctl/internal/report"
)

const version = "1.0.0"

// appConfig stores the resolved configuration: the --device flag layered
// over WDCTL_* environment variables by viper.
var appConfig config.Config

var (
	flagList    string
	outputList  string
	noFlags     bool
	noHeadings  bool
	noIdent     bool
	noTimeouts  bool
	pairsFormat bool
	rawFormat   bool
)

// usageError marks errors caused by bad command line input, so Execute
// can point the user at --help. Device errors are deliberately not
// wrapped in it.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// rootCmd is the whole CLI: wdctl has no subcommands, the root command
// queries the device and prints the report.
var rootCmd = &cobra.Command{
	Use:   "wdctl",
	Short: "Show hardware watchdog status",
	Long: `wdctl shows the status of a hardware watchdog device: its identity and
firmware version, the configured timeout values, and a table of the
capability flags the hardware supports together with their current and
boot status bits. The device is queried read-only and disarmed with the
magic close character before the handle is released, so running wdctl
never leaves the watchdog counting down.

Available columns:
` + report.ColumnHelp(),
	Version:       version,
	Args:          noPositionalArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

// Execute runs the CLI and exits non-zero on any error. Usage errors get
// a help hint; device errors are printed as-is.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "wdctl:", err)
		var uerr usageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, "Try 'wdctl --help' for more information.")
		}
		os.Exit(1)
	}
}

func init() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cobra.OnInitialize(initConfig)

	flags := rootCmd.Flags()
	flags.StringP("device", "d", "", fmt.Sprintf("device to use (default is %s)", config.DefaultDevice))
	flags.StringVarP(&flagList, "flags", "f", "", "print selected flags only")
	flags.BoolVarP(&noFlags, "noflags", "F", false, "don't print information about flags")
	flags.BoolVarP(&noHeadings, "noheadings", "n", false, "don't print headings")
	flags.BoolVarP(&noIdent, "noident", "I", false, "don't print watchdog identity information")
	flags.BoolVarP(&noTimeouts, "notimeouts", "T", false, "don't print watchdog timeouts")
	flags.StringVarP(&outputList, "output", "o", "", "output columns of the flags")
	flags.BoolVarP(&pairsFormat, "pairs", "P", false, "use key=\"value\" output format")
	flags.BoolVarP(&rawFormat, "raw", "r", false, "use raw output format")
	flags.BoolP("version", "V", false, "print version and exit")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError{err}
	})
}

// initConfig resolves the device path through viper: the --device flag
// wins, then the WDCTL_DEVICE environment variable, then the built-in
// default applied by Config.GetDevice.
func initConfig() {
	viper.SetEnvPrefix("WDCTL")
	viper.AutomaticEnv()

	if err := viper.BindPFlag("device", rootCmd.Flags().Lookup("device")); err != nil {
		log.Warn().Err(err).Msg("failed to bind device flag")
	}

	if err := viper.Unmarshal(&appConfig); err != nil {
		log.Warn().Err(err).Msg("unable to decode configuration")
	}
}

func noPositionalArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return usageError{fmt.Errorf("unexpected argument: %s", args[0])}
	}
	return nil
}

// run validates all options first and only then touches the device, so a
// bad flag or column list never opens (and thus never has to disarm) the
// watchdog.
func run(cmd *cobra.Command, args []string) error {
	var wanted uint32
	if flagList != "" {
		mask, err := device.ParseFlagList(flagList)
		if err != nil {
			return usageError{err}
		}
		wanted = mask
	}
	if wanted != 0 && noFlags {
		return usageError{errors.New("--flags and --noflags are mutually exclusive")}
	}

	columns := report.DefaultColumns()
	if outputList != "" {
		selected, err := report.ParseColumns(outputList)
		if err != nil {
			return usageError{err}
		}
		columns = selected
	}

	status, err := device.Read(appConfig.GetDevice())
	if err != nil {
		return err
	}

	report.Render(os.Stdout, status, report.Options{
		Columns:    columns,
		FlagFilter: wanted,
		NoHeadings: noHeadings,
		NoIdent:    noIdent,
		NoTimeouts: noTimeouts,
		NoFlags:    noFlags,
		Raw:        rawFormat,
		Pairs:      pairsFormat,
	})
	return nil
}
