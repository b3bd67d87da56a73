package filemonitor

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/operator-framework/fasb/pkg/solver"
)

// programStore holds the last program read from a file that parsed.
type programStore struct {
	mutex    sync.RWMutex
	program  *solver.Program
	path     string
	onReload func(*solver.Program)
}

// NewProgramStore reads and parses the program at path. onReload is
// called with every program reloaded later on.
func NewProgramStore(path string, onReload func(*solver.Program)) (*programStore, error) {
	p, err := readProgram(path)
	if err != nil {
		return nil, err
	}
	return &programStore{
		program:  p,
		path:     path,
		onReload: onReload,
	}, nil
}

func readProgram(path string) (*solver.Program, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return solver.Parse(string(src))
}

func (s *programStore) storeProgram() error {
	p, err := readProgram(s.path)
	if err != nil {
		return err
	}
	s.mutex.Lock()
	s.program = p
	s.mutex.Unlock()
	if s.onReload != nil {
		s.onReload(p)
	}
	return nil
}

// HandleProgramUpdate reloads the program when its file is written or
// replaced. A program that does not parse keeps the previous one.
func (s *programStore) HandleProgramUpdate(logger logrus.FieldLogger, event fsnotify.Event) {
	if filepath.Clean(event.Name) != filepath.Clean(s.path) {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}
	logger.Debugf("got fs event for %v", event.Name)

	if err := s.storeProgram(); err != nil {
		logger.Warnf("unable to reload program: %v", err)
		return
	}
	logger.Debugf("successfully reloaded program %v", s.path)
}

func (s *programStore) Program() *solver.Program {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.program
}

// Dir returns the directory to watch for updates of the program file,
// which also observes the file being replaced.
func (s *programStore) Dir() string {
	return filepath.Dir(s.path)
}
