package hcl

import "github.com/vk/slp2graph/internal/config"

// translate converts the decoded HCL blocks into the agnostic layer.
func translate(root *fileRoot) *config.Layer {
	l := &config.Layer{}
	if p := root.Paths; p != nil {
		l.UploadDir = p.UploadDir
		l.ScratchDir = p.ScratchDir
		l.ImportDir = p.ImportDir
	}
	if o := root.Output; o != nil {
		l.Schema = o.Schema
		l.EdgePolicy = o.EdgePolicy
	}
	if r := root.Run; r != nil {
		l.Workers = r.Workers
		l.Dedupe = r.Dedupe
		l.DedupeCapacity = r.DedupeCapacity
		l.RemoveProcessed = r.RemoveProcessed
		l.LedgerPath = r.LedgerPath
	}
	return l
}
