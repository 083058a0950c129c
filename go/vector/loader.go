// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package vector

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Fantom-foundation/Gaslighter/go/logger"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var log = logger.NewLogger("vector")

// ImportVectorsJSON reads all test vectors of the given json file. The file
// maps vector names to vectors.
func ImportVectorsJSON(filePath string) (map[string]*TestVector, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	vectors, err := DecodeVectors(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", filePath, err)
	}
	log.Debugf("loaded %d vectors from %s", len(vectors), filePath)
	return vectors, nil
}

// DecodeVectors decodes a json stream mapping vector names to vectors.
func DecodeVectors(reader io.Reader) (map[string]*TestVector, error) {
	vectors := map[string]*TestVector{}
	if err := json.NewDecoder(reader).Decode(&vectors); err != nil {
		return nil, err
	}
	for name, vector := range vectors {
		if vector == nil {
			return nil, fmt.Errorf("vector %q is empty", name)
		}
		vector.Name = name
	}
	return vectors, nil
}

// ExportVectorJSON writes the given vector in json format to the given file
// path, keyed by its name such that ImportVectorsJSON can read it back. An
// existing file is overwritten.
func ExportVectorJSON(vector *TestVector, filePath string) error {
	return ExportVectorsJSON(map[string]*TestVector{vector.Name: vector}, filePath)
}

// ExportVectorsJSON writes the given vectors in json format to the given
// file path. An existing file is overwritten.
func ExportVectorsJSON(vectors map[string]*TestVector, filePath string) error {
	serialized, err := json.MarshalIndent(vectors, "", "  ")
	if err != nil {
		return err
	}
	log.Debugf("exporting %d vectors to %s", len(vectors), filePath)
	return os.WriteFile(filePath, serialized, 0644)
}

// EnumerateInputs expands the given list of files and directories into the
// list of json files contained in them. Directories are searched recursively.
func EnumerateInputs(inputs []string) ([]string, error) {
	var inputFiles []string

	for _, input := range inputs {
		path, err := filepath.Abs(input)
		if err != nil {
			return nil, err
		}

		stat, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !stat.IsDir() {
			inputFiles = append(inputFiles, path)
			continue
		}

		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, err
		}

		for _, entry := range entries {
			filePath := filepath.Join(path, entry.Name())
			if entry.IsDir() {
				recInputs, err := EnumerateInputs([]string{filePath})
				if err != nil {
					return nil, err
				}
				inputFiles = append(inputFiles, recInputs...)
			} else if strings.HasSuffix(entry.Name(), ".json") {
				inputFiles = append(inputFiles, filePath)
			}
		}
	}

	return inputFiles, nil
}

// LoadAll imports the vectors of all given files. Vector names must be unique
// across files.
func LoadAll(files []string) (map[string]*TestVector, error) {
	res := map[string]*TestVector{}
	for _, file := range files {
		vectors, err := ImportVectorsJSON(file)
		if err != nil {
			return nil, err
		}
		for name, vector := range vectors {
			if _, exists := res[name]; exists {
				return nil, fmt.Errorf("duplicate vector %q in %s", name, file)
			}
			res[name] = vector
		}
	}
	return res, nil
}

// Names returns the sorted names of the given vectors.
func Names(vectors map[string]*TestVector) []string {
	names := maps.Keys(vectors)
	slices.Sort(names)
	return names
}

// FilterNames returns the names matching the given filter. A nil filter
// matches every name.
func FilterNames(names []string, filter *regexp.Regexp) []string {
	if filter == nil {
		return names
	}
	res := make([]string, 0, len(names))
	for _, name := range names {
		if filter.MatchString(name) {
			res = append(res, name)
		}
	}
	return res
}
