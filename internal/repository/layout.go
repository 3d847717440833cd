package repository

// MetadataDirName is the reserved directory under a worktree that holds all
// repository state.
const MetadataDirName = ".nexus"

// Files and directories under the metadata directory.
const (
	ConfigFile      = "config"
	DescriptionFile = "description"
	HeadFile        = "HEAD"
	BranchesDir     = "branches"
	ObjectsDir      = "objects"
	RefsDir         = "refs"
	TagsDir         = "tags"
	HeadsDir        = "heads"
)

// Contents written by Create.
const (
	DefaultDescription = "Unnamed repository; edit this file 'description' to name the repository.\n"
	DefaultHead        = "ref: refs/heads/main\n"
)

// skeleton lists the directories Create makes, in creation order.
var skeleton = [][]string{
	{BranchesDir},
	{ObjectsDir},
	{RefsDir, TagsDir},
	{RefsDir, HeadsDir},
}
