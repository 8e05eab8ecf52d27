package compiler

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/pkg/errors"
)

// runChild executes path as a child process with inherited standard
// streams, exactly as the teacher's own -run flag shells out to gcc's
// output and the produced executable via os/exec. A successful run
// prints the child's exit status to stdout; a failed one is returned as
// an error that carries it.
func runChild(path string) error {
	cmd := exec.Command(path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "running %s", path)
	}
	fmt.Println(cmd.ProcessState)
	return nil
}
