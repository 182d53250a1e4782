package dataset

import (
	"net/http"

	"github.com/arloliu/segfit/internal/options"
)

// loadConfig holds parsing parameters for the CSV loaders.
type loadConfig struct {
	name       string
	delimiter  rune
	naValues   []string
	httpClient *http.Client
}

func defaultLoadConfig() loadConfig {
	return loadConfig{
		delimiter:  ',',
		naValues:   []string{"", "NA", "NaN", "nan", "null", "NULL", "-"},
		httpClient: http.DefaultClient,
	}
}

// Option configures dataset loading.
type Option = options.Option[*loadConfig]

// WithName sets the dataset name. Load and Fetch default to the file's base
// name; ReadCSV defaults to "dataset".
func WithName(name string) Option {
	return options.NoError(func(c *loadConfig) {
		c.name = name
	})
}

// WithDelimiter sets the field delimiter. Defaults to ','.
func WithDelimiter(d rune) Option {
	return options.New(func(c *loadConfig) error {
		if d == 0 {
			return errInvalidDelimiter
		}
		c.delimiter = d

		return nil
	})
}

// WithNAValues sets the cell strings treated as missing values, replacing the
// defaults ("", "NA", "NaN", "null", "-", ...).
func WithNAValues(values []string) Option {
	return options.NoError(func(c *loadConfig) {
		c.naValues = values
	})
}

// WithHTTPClient sets the HTTP client used by Fetch. Defaults to
// http.DefaultClient.
func WithHTTPClient(client *http.Client) Option {
	return options.New(func(c *loadConfig) error {
		if client == nil {
			return errNilHTTPClient
		}
		c.httpClient = client

		return nil
	})
}
