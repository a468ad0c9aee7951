// Package hcl provides the HCL implementation of the config.Loader
// interface, along with rendering a model back to HCL.
//
// A job file has up to three blocks, each optional:
//
//	paths {
//	  upload_dir  = "/data/uploads"
//	  scratch_dir = "/tmp/slp2graph"
//	  import_dir  = "${env.HOME}/import"
//	}
//
//	output {
//	  schema      = "extended"
//	  edge_policy = "complete"
//	}
//
//	run {
//	  workers          = 4
//	  dedupe           = true
//	  dedupe_capacity  = 500000
//	  remove_processed = true
//	  ledger           = "ledger.db"
//	}
//
// Expressions may reference the process environment through the env object.
package hcl
