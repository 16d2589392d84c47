// Package hcl_adapter loads synthesis problems written in HCL.
//
// A file may define any number of problem blocks:
//
//	problem "arbiter" {
//	  inputs     = ["r1", "r2"]
//	  outputs    = ["g1", "g2"]
//	  assume     = ["[] <> !r1"]
//	  guarantees = ["[] (r1 -> <> g1)", "[] !(g1 && g2)"]
//
//	  unroll_steps = 2
//	  risk_bound   = 4
//	  engine       = "cobuechi"
//	}
//
// The optional settings override the run defaults only when present. Any
// other top-level content is ignored, so problem blocks can live next to
// unrelated configuration.
package hcl_adapter
