package msbin

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// setLoggingLevel adjusts the global zerolog level to match a config string
// ("debug", "info", "warn", "error", "fatal", "none"/"disabled").
func setLoggingLevel(level string) {
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info", "":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "fatal":
		zerolog.SetGlobalLevel(zerolog.FatalLevel)
	case "none", "disabled":
		zerolog.SetGlobalLevel(zerolog.Disabled)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func init() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: false})
}

// logUnknownTag records that the parser encountered a tag byte with no
// registered record variant. Parsing continues; the tag is consumed but its
// (unknown) payload is not.
func logUnknownTag(tagByte byte, pos int64) {
	log.Warn().Uint8("tag", tagByte).Int64("offset", pos).Msg("unknown record tag, skipping")
}

// logUnknownEntity records that the XML reader hit an entity reference with
// no known expansion. The reference passes through literally.
func logUnknownEntity(name string) {
	log.Warn().Str("entity", name).Msg("unknown entity reference, passing through literally")
}

// logUnresolvedDictionaryIndex records a dictionary index with no backing
// string. The caller substitutes a surrogate "dict#<index>" name.
func logUnresolvedDictionaryIndex(index uint32) {
	log.Warn().Uint32("index", index).Msg("unresolved dictionary index, using surrogate name")
}

// logTruncatedInput records that ParseBinary hit the end of input mid-record
// and is returning the tree built so far rather than failing outright. Only
// reached outside StrictMode; see Config.StrictMode.
func logTruncatedInput(pos int64, err error) {
	log.Warn().Int64("offset", pos).Err(err).Msg("truncated input, returning partial tree")
}
