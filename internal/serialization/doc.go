// Package serialization reads and writes model weights in the SafeTensors format.
//
//	Format Structure:
//	  [8 bytes: Header Size N (uint64 LE)]
//	  [N bytes: JSON header, space padded to a multiple of 8]
//	  [Tensor data: raw little-endian bytes, tensors in name order]
//
// The JSON header maps every tensor name to its dtype, shape and
// [start, end) byte range within the data section. The optional
// "__metadata__" entry is a flat string map; the writer adds a "sha256"
// entry covering the data section, which the reader verifies on request.
//
// Example usage:
//
//	// Save
//	state := nn.StateDict[B](model)
//	err := serialization.WriteSafeTensors("googlenet.safetensors", state, map[string]string{"arch": "googlenet"})
//
//	// Load
//	r, err := serialization.OpenSafeTensors("googlenet.safetensors")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//	state, err := r.ReadStateDict(tensor.CPU)
package serialization
