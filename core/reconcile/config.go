package reconcile

// Config holds the sync settings loaded by core/config.
type Config struct {
	// DeleteMissing enables deletion of columns absent from the CSV.
	DeleteMissing bool `mapstructure:"delete_missing" default:"false"`
	// TransactionName labels the transaction of a pass.
	TransactionName string `mapstructure:"transaction_name" default:"Sync Columns From CSV"`
	// CSVPath is the default input file.
	CSVPath string `mapstructure:"csv_path" default:"columns.csv"`
	// Archive enables copying inputs and reports to object storage.
	Archive bool `mapstructure:"archive" default:"false"`
	// ArchivePrefix is the storage prefix used for archived runs.
	ArchivePrefix string `mapstructure:"archive_prefix" default:"history"`
}

// Options controls a single reconciliation pass.
type Options struct {
	// DeleteMissing deletes indexed columns whose key no row mentions.
	DeleteMissing bool
	// TransactionName labels the transaction. Defaults to DefaultTransactionName.
	TransactionName string
}

// DefaultTransactionName is used when Options.TransactionName is empty.
const DefaultTransactionName = "Sync Columns From CSV"

// Options returns the per-pass options described by the configuration.
func (c Config) Options() Options {
	return Options{
		DeleteMissing:   c.DeleteMissing,
		TransactionName: c.TransactionName,
	}
}
