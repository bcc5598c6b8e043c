// Package files locates the users, matches and chats input tables.
//
// When the input paths are not given explicitly, a data directory is scanned
// for table files (.csv, .tsv, .txt, .xlsx) whose names contain "user",
// "match" or "chat". If several files match a keyword the most recently
// modified one is used, so dropping a fresh export next to an old one just
// works.
//
// Example usage:
//
//	discovery := files.NewDiscovery("/path/to/project")
//	inputs, err := discovery.DiscoverInputs("data")
//	if err != nil {
//	    return err
//	}
package files
