package file

import (
	"fmt"

	"github.com/jsphweid/fretchord/util"
)

type FileNumToMidiPath = map[uint32]string

// CreateFileNumMap numbers paths in the order given, starting at 1.
func CreateFileNumMap(paths []string) FileNumToMidiPath {
	res := make(FileNumToMidiPath)
	for i, v := range paths {
		res[uint32(i+1)] = v
	}
	return res
}

// Collect expands every arg (a .mid file or a directory to walk) and numbers
// the result. maxNum of 0 means no limit.
func Collect(args []string, maxNum int) (FileNumToMidiPath, error) {
	var paths []string
	for _, arg := range args {
		found, err := util.GatherMidiPaths(arg, 0)
		if err != nil {
			return nil, fmt.Errorf("collecting midi files under %s: %w", arg, err)
		}
		paths = append(paths, found...)
	}
	if maxNum > 0 && len(paths) > maxNum {
		paths = paths[:maxNum]
	}
	return CreateFileNumMap(paths), nil
}
