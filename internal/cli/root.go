package cli

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
	quiet   bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pysplit",
	Short: "pysplit - split Python scripts into one file per definition",
	Long: `pysplit turns a single Python script into a package: every top-level
function and class moves to its own file, and the script is rewritten to
import them back with relative imports.

The script must live inside a git working tree. After a successful run the
changes are committed on a new branch so the original stays one checkout away.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		configureLogging()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is <repo>/.pysplit/config.yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "disable progress bars and non-error output")

	// Bind flags to viper
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}

// initConfig resolves the global flags; PYSPLIT_VERBOSE and PYSPLIT_QUIET
// work as well as the flags.
func initConfig() {
	viper.SetEnvPrefix("PYSPLIT")
	viper.AutomaticEnv()

	cfgFile = viper.GetString("config")
	verbose = viper.GetBool("verbose")
	quiet = viper.GetBool("quiet")
}

func configureLogging() {
	log.SetFlags(0)
	log.SetPrefix("pysplit: ")
	if quiet {
		log.SetOutput(io.Discard)
		return
	}
	log.SetOutput(os.Stderr)
}

// debugf logs only with --verbose.
func debugf(format string, args ...any) {
	if verbose {
		log.Printf(format, args...)
	}
}
