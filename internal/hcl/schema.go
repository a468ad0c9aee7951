package hcl

// fileRoot decodes every top-level block of a job file.
type fileRoot struct {
	Paths  *pathsBlock  `hcl:"paths,block"`
	Output *outputBlock `hcl:"output,block"`
	Run    *runBlock    `hcl:"run,block"`
}

type pathsBlock struct {
	UploadDir  *string `hcl:"upload_dir"`
	ScratchDir *string `hcl:"scratch_dir"`
	ImportDir  *string `hcl:"import_dir"`
}

type outputBlock struct {
	Schema     *string `hcl:"schema"`
	EdgePolicy *string `hcl:"edge_policy"`
}

type runBlock struct {
	Workers         *int    `hcl:"workers"`
	Dedupe          *bool   `hcl:"dedupe"`
	DedupeCapacity  *int    `hcl:"dedupe_capacity"`
	RemoveProcessed *bool   `hcl:"remove_processed"`
	LedgerPath      *string `hcl:"ledger"`
}
