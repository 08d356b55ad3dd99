package policy

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/shinji-kodama/webdemo-index/internal/model"
)

// DefaultNameFile is the per-seed file holding the display name.
const DefaultNameFile = "name.txt"

// ErrNoSeedSuffix is wrapped by ParseSeedID when a directory name does not
// end with "_s<digits>".
var ErrNoSeedSuffix = errors.New("missing _s<digits> suffix")

// seedSuffix captures the seed id at the very end of a seed directory name.
var seedSuffix = regexp.MustCompile(`_s([0-9]+)$`)

// ParseSeedID extracts the seed id from a seed directory name such as
// "biped_s12". The digits are returned verbatim.
func ParseSeedID(dirName string) (string, error) {
	m := seedSuffix.FindStringSubmatch(dirName)
	if m == nil {
		return "", model.WrapCLIError(model.ExitParseError,
			fmt.Sprintf("invalid seed directory name %q", dirName), ErrNoSeedSuffix)
	}
	return m[1], nil
}

// ReadSeedName returns the first line of seedDir/nameFile without its line
// terminator, or "" when the file does not exist.
//
// Line terminators follow universal-newline rules: the line ends at the
// first "\n", "\r\n" or lone "\r". Nothing else is trimmed, so leading and
// trailing spaces are part of the name. A first line that is not valid
// UTF-8 is a parse error.
func ReadSeedName(seedDir, nameFile string) (string, error) {
	path := filepath.Join(seedDir, nameFile)

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", model.WrapCLIError(model.ExitIOError,
			fmt.Sprintf("failed to open %s", path), err)
	}
	defer func() { _ = f.Close() }()

	line, err := bufio.NewReader(f).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", model.WrapCLIError(model.ExitIOError,
			fmt.Sprintf("failed to read %s", path), err)
	}

	if i := strings.IndexAny(line, "\r\n"); i >= 0 {
		line = line[:i]
	}
	if !utf8.ValidString(line) {
		return "", model.NewCLIError(model.ExitParseError,
			fmt.Sprintf("%s is not valid UTF-8", path))
	}
	return line, nil
}
