/*
Copyright © 2024 Ryan Painter paintersrp@gmail.com

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"os"

	pkgcmd "github.com/Paintersrp/sift/pkg/cmd"
	"github.com/Paintersrp/sift/pkg/cmd/root"
)

// Execute runs the command tree and exits non-zero on failure.
func Execute() {
	f := pkgcmd.NewFactory()
	err := root.NewCmdRoot(f).Execute()
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Exit(1)
	}
}
