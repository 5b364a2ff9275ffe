/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package store

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// FileStorage keeps each entry in its own file under a state directory.
// It is the default backend and mirrors browser local storage closely
// enough that the engine's read-your-write guarantee holds trivially.
type FileStorage struct {
	fs  afero.Fs
	dir string
}

// NewFileStorage creates the state directory if needed and returns a
// file-backed Storage rooted there.
func NewFileStorage(fs afero.Fs, dir string) (*FileStorage, error) {
	if err := fs.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.Wrapf(err, "failed to create state directory %s", dir)
	}
	return &FileStorage{fs: fs, dir: dir}, nil
}

func (f *FileStorage) path(key string) string {
	return filepath.Join(f.dir, key)
}

// Get returns the stored value and whether the key exists.
func (f *FileStorage) Get(key string) (string, bool, error) {
	data, err := afero.ReadFile(f.fs, f.path(key))
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrapf(err, "failed to read entry %s", key)
	}
	return string(data), true, nil
}

// Set stores the value, overwriting any previous one.
func (f *FileStorage) Set(key string, value string) error {
	if err := afero.WriteFile(f.fs, f.path(key), []byte(value), 0o600); err != nil {
		return errors.Wrapf(err, "failed to write entry %s", key)
	}
	return nil
}

// Delete removes the key. Deleting an absent key is not an error.
func (f *FileStorage) Delete(key string) error {
	err := f.fs.Remove(f.path(key))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "failed to delete entry %s", key)
	}
	return nil
}
