package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var transactionHeader = []string{
	"transaction_id", "amount", "account_age_days", "num_transactions_last_24h",
	"avg_transaction_amount_7d", "transaction_type", "is_international", "is_fraud",
}

var transactionTypes = []string{"online", "atm", "pos", "transfer"}

// writeTransactions writes n rows where every fifth row is fraudulent.
func writeTransactions(t *testing.T, dir string, n int) string {
	t.Helper()
	var sb strings.Builder
	sb.WriteString(strings.Join(transactionHeader, ","))
	sb.WriteString("\n")
	for i := 0; i < n; i++ {
		fraud := "0"
		if i%5 == 0 {
			fraud = "1"
		}
		intl := "False"
		if i%3 == 0 {
			intl = "True"
		}
		fmt.Fprintf(&sb, "tx-%04d,%d.%02d,%d,%d,%d.5,%s,%s,%s\n",
			i, 10+i%400, i%100, 30+i%900, i%12, 50+i%70,
			transactionTypes[i%len(transactionTypes)], intl, fraud)
	}
	path := filepath.Join(dir, "transactions.csv")
	require.NoError(t, os.WriteFile(path, []byte(sb.String()), 0o644))
	return path
}

// writeConfig writes a config file pointing at dataPath with quiet logging.
func writeConfig(t *testing.T, dir, dataPath, extra string) string {
	t.Helper()
	content := fmt.Sprintf(`data:
  path: %s
logging:
  level: error
  format: text
  output: stderr
%s`, dataPath, extra)
	path := filepath.Join(dir, "fraudprep.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// resetFlags restores every persistent flag variable when the test ends.
func resetFlags(t *testing.T) {
	t.Helper()
	saved := struct {
		cfgFile, dataPath, logLevel, logFormat string
		valFraction                            float64
		seed                                   int64
		noColor                                bool
	}{cfgFile, dataPath, logLevel, logFormat, valFraction, seed, noColor}

	t.Cleanup(func() {
		cfgFile, dataPath, logLevel, logFormat = saved.cfgFile, saved.dataPath, saved.logLevel, saved.logFormat
		valFraction, seed, noColor = saved.valFraction, saved.seed, saved.noColor
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})
}

// execute runs the root command with args and returns what it printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(t)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}
