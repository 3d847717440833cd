// Package repository locates, opens and creates nexus repositories.
//
// A repository is a worktree directory holding a reserved metadata directory
// named [MetadataDirName]:
//
//	<worktree>/.nexus/
//	    branches/
//	    objects/
//	    refs/heads/
//	    refs/tags/
//	    description
//	    HEAD
//	    config
//
// # Handles
//
// A [Repository] is obtained in one of two ways:
//
//  1. [Open] or [Locate] - reads an existing repository and validates it
//  2. [Create] - scaffolds a new repository and returns it without validation
//
// Validation requires the metadata directory, a readable config file and
// core.repositoryformatversion equal to 0. Failures are reported with
// [ErrNotARepository], [ErrMissingConfig] and [ErrUnsupportedFormatVersion]
// and can be tested with errors.Is.
//
// # Paths
//
// [Repository.Path], [Repository.Dir] and [Repository.File] compute paths
// under the metadata directory. Path never touches the filesystem; Dir and
// File can create missing directories on request.
//
// # Limitations
//
// Nothing here takes locks. Create is not transactional: an interrupted
// Create leaves a partial metadata directory that a second Create refuses to
// touch.
package repository
