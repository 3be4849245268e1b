package main

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"wrapstudio/internal/infra"
)

var sqlKeywordPattern = regexp.MustCompile(`(?i)^\s*(--sql\b|select\b|insert\b|update\b|delete\b|with\b)`)

type violation struct {
	file    string
	name    string
	line    int
	message string
}

func (v violation) String() string {
	return fmt.Sprintf("%s:%d %s (%s)", v.file, v.line, v.message, v.name)
}

type linter struct {
	fset       *token.FileSet
	seen       map[string]token.Position
	violations []violation
	statements int
}

func newLinter() *linter {
	return &linter{fset: token.NewFileSet(), seen: map[string]token.Position{}}
}

func (l *linter) lintPath(target string) error {
	info, err := os.Stat(target)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		if filepath.Ext(target) != ".go" {
			return nil
		}
		return l.lintFile(target)
	}
	return filepath.WalkDir(target, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != target && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == "vendor" || name == "testdata") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		return l.lintFile(path)
	})
}

func (l *linter) lintFile(path string) error {
	file, err := parser.ParseFile(l.fset, path, nil, 0)
	if err != nil {
		return err
	}
	ast.Inspect(file, func(n ast.Node) bool {
		vs, ok := n.(*ast.ValueSpec)
		if !ok {
			return true
		}
		for i, value := range vs.Values {
			bl, ok := value.(*ast.BasicLit)
			if !ok || bl.Kind != token.STRING {
				continue
			}
			raw, err := unquote(bl.Value)
			if err != nil || !sqlKeywordPattern.MatchString(raw) {
				continue
			}
			name := ""
			if i < len(vs.Names) && vs.Names[i] != nil {
				name = vs.Names[i].Name
			}
			l.check(path, name, l.fset.Position(bl.Pos()), raw)
		}
		return true
	})
	return nil
}

func (l *linter) check(path, name string, pos token.Position, raw string) {
	l.statements++
	marker, _, err := infra.ExtractMarker(raw)
	if err != nil {
		msg := "invalid statement"
		if errors.Is(err, infra.ErrMissingMarker) {
			msg = "missing or invalid --sql <uuid> marker"
		}
		l.violations = append(l.violations, violation{file: path, line: pos.Line, name: name, message: msg})
		return
	}
	if prev, dup := l.seen[marker]; dup {
		l.violations = append(l.violations, violation{
			file:    path,
			line:    pos.Line,
			name:    name,
			message: fmt.Sprintf("marker %s already used at %s:%d", marker, prev.Filename, prev.Line),
		})
		return
	}
	l.seen[marker] = pos
}

func unquote(v string) (string, error) {
	if len(v) == 0 {
		return v, nil
	}
	if v[0] == '`' {
		return v[1 : len(v)-1], nil
	}
	return strconv.Unquote(v)
}
