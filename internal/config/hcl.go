package config

// hclFile mirrors Config for HCL files. Every attribute is optional so that
// unset values keep their defaults.
//
//	version = "1.0"
//	batch {
//	  workers = 8
//	  compare = true
//	}
//	logging {
//	  level = "debug"
//	}
type hclFile struct {
	Version *string     `hcl:"version,optional"`
	Batch   *hclBatch   `hcl:"batch,block"`
	Output  *hclOutput  `hcl:"output,block"`
	Server  *hclServer  `hcl:"server,block"`
	Logging *hclLogging `hcl:"logging,block"`
}

type hclBatch struct {
	Workers     *int  `hcl:"workers,optional"`
	StopOnError *bool `hcl:"stop_on_error,optional"`
	Compare     *bool `hcl:"compare,optional"`
}

type hclOutput struct {
	DefaultFormat     *string `hcl:"default_format,optional"`
	ShowProbabilities *bool   `hcl:"show_probabilities,optional"`
}

type hclServer struct {
	Addr               *string `hcl:"addr,optional"`
	MaxBatchSize       *int    `hcl:"max_batch_size,optional"`
	ReadTimeoutSeconds *int    `hcl:"read_timeout_seconds,optional"`
	MaxBodyBytes       *int64  `hcl:"max_body_bytes,optional"`
}

type hclLogging struct {
	Level       *string `hcl:"level,optional"`
	Format      *string `hcl:"format,optional"`
	Output      *string `hcl:"output,optional"`
	Development *bool   `hcl:"development,optional"`
}

func (f *hclFile) apply(c *Config) {
	set(&c.Version, f.Version)
	if b := f.Batch; b != nil {
		set(&c.Batch.Workers, b.Workers)
		set(&c.Batch.StopOnError, b.StopOnError)
		set(&c.Batch.Compare, b.Compare)
	}
	if o := f.Output; o != nil {
		set(&c.Output.DefaultFormat, o.DefaultFormat)
		set(&c.Output.ShowProbabilities, o.ShowProbabilities)
	}
	if s := f.Server; s != nil {
		set(&c.Server.Addr, s.Addr)
		set(&c.Server.MaxBatchSize, s.MaxBatchSize)
		set(&c.Server.ReadTimeoutSeconds, s.ReadTimeoutSeconds)
		set(&c.Server.MaxBodyBytes, s.MaxBodyBytes)
	}
	if l := f.Logging; l != nil {
		set(&c.Logging.Level, l.Level)
		set(&c.Logging.Format, l.Format)
		set(&c.Logging.Output, l.Output)
		set(&c.Logging.Development, l.Development)
	}
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
