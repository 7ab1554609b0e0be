package config

import "time"

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultExeDir holds the compiled test executables, relative to the project
	DefaultExeDir = "test/functional/src"
	// DefaultReferenceDir holds the known-good xlsx files, relative to the project
	DefaultReferenceDir = "test/functional/xlsx_files"
	// DefaultManifestFile is the optional suite manifest, relative to the project
	DefaultManifestFile = "xlsxft.yaml"
	// DefaultEnvFile is loaded from the project directory when present
	DefaultEnvFile = ".env"
	// DefaultOutputJSONFile is the default output JSON file name
	DefaultOutputJSONFile = "test-results.json"
	// DefaultOutputJSONDir is the default output directory
	DefaultOutputJSONDir = "storage"
	// DefaultProcessors runs cases one after another
	DefaultProcessors = 1
	// DefaultTimeout bounds a single executable run
	DefaultTimeout = 60 * time.Second
	// DefaultComparator is the xlsx package comparison
	DefaultComparator = "structural"
	// DefaultStore keeps results in the JSON file
	DefaultStore = "json"
	// DefaultLogLevel is the logrus level name
	DefaultLogLevel = "warning"
	// DefaultSuite is used when neither a manifest nor an executable directory yields cases
	DefaultSuite = "set_selection"
)

// DefaultPathsToIgnore are directories skipped when scanning for executables
var DefaultPathsToIgnore = []string{
	"CMakeFiles",
	"obj",
	"build",
}
