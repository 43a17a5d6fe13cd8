package config

import "time"

// Config is the root configuration of a dataset build.
type Config struct {
	Log        LogConfig        `yaml:"log"`
	Sources    SourcesConfig    `yaml:"sources"`
	Generation GenerationConfig `yaml:"generation"`
	Output     OutputConfig     `yaml:"output"`
	Database   DatabaseConfig   `yaml:"database"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// SourcesConfig points at the input data.
type SourcesConfig struct {
	FrequencyPath         string `yaml:"frequency_path"          env:"SOURCES_FREQUENCY_PATH"          env-default:"words_plwiki-2022-08-29.txt"`
	OntologyPath          string `yaml:"ontology_path"           env:"SOURCES_ONTOLOGY_PATH"`
	OntologyLang          string `yaml:"ontology_lang"           env:"SOURCES_ONTOLOGY_LANG"           env-default:"pl"`
	VocabularyPath        string `yaml:"vocabulary_path"         env:"SOURCES_VOCABULARY_PATH"`
	VocabularyFormat      string `yaml:"vocabulary_format"       env:"SOURCES_VOCABULARY_FORMAT"       env-default:"tokenizer"`
	VocabularyStripSuffix string `yaml:"vocabulary_strip_suffix" env:"SOURCES_VOCABULARY_STRIP_SUFFIX"`
	// ZipfPath is an optional word -> Zipf score table. Without it scores
	// are derived from the frequency file.
	ZipfPath string `yaml:"zipf_path" env:"SOURCES_ZIPF_PATH"`
}

// GenerationConfig holds the extraction policy and randomness.
type GenerationConfig struct {
	Seed                int64  `yaml:"seed"                  env:"GEN_SEED"                  env-default:"42"`
	Alphabet            string `yaml:"alphabet"              env:"GEN_ALPHABET"              env-default:"abcdefghijklmnoprstuwyząćęłńóśżź"`
	CorruptionMinCount  int    `yaml:"corruption_min_count"  env:"GEN_CORRUPTION_MIN_COUNT"  env-default:"100"`
	HypernymMinDepth    int    `yaml:"hypernym_min_depth"    env:"GEN_HYPERNYM_MIN_DEPTH"    env-default:"5"`
	HypernymWindow      int    `yaml:"hypernym_window"       env:"GEN_HYPERNYM_WINDOW"       env-default:"3"`
	ClosureDepth        int    `yaml:"closure_depth"         env:"GEN_CLOSURE_DEPTH"         env-default:"4"`
	HypernymMin         int    `yaml:"hypernym_min"          env:"GEN_HYPERNYM_MIN"          env-default:"3"`
	HypernymMax         int    `yaml:"hypernym_max"          env:"GEN_HYPERNYM_MAX"          env-default:"20"`
	CohyponymMin        int    `yaml:"cohyponym_min"         env:"GEN_COHYPONYM_MIN"         env-default:"10"`
	CohyponymMax        int    `yaml:"cohyponym_max"         env:"GEN_COHYPONYM_MAX"         env-default:"50"`
	ExpansionSenses     int    `yaml:"expansion_senses"      env:"GEN_EXPANSION_SENSES"      env-default:"2"`
	DevRatioDenominator int    `yaml:"dev_ratio_denominator" env:"GEN_DEV_RATIO_DENOMINATOR" env-default:"10"`
	// Limit stops after this many frequency-list words; 0 processes all.
	Limit int `yaml:"limit" env:"GEN_LIMIT" env-default:"0"`
}

// OutputConfig selects where records go.
type OutputConfig struct {
	Path      string `yaml:"path"       env:"OUTPUT_PATH"       env-default:"WNLaMPro.txt"`
	Postgres  bool   `yaml:"postgres"   env:"OUTPUT_POSTGRES"   env-default:"false"`
	BatchSize int    `yaml:"batch_size" env:"OUTPUT_BATCH_SIZE" env-default:"500"`
}

// DatabaseConfig holds PostgreSQL connection settings. Only used when
// Output.Postgres is set.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"4"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}
