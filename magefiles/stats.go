package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode"
)

// statsDocs are the design documents whose size Stats reports.
var statsDocs = []string{"DESIGN.md", "SPEC_FULL.md", "spec.md"}

// goLines counts production and test lines of one package directory.
type goLines struct {
	Prod int `json:"prod"`
	Test int `json:"test"`
}

// Stats prints Go lines of code per package and word counts of the design
// documents as one JSON object.
func Stats() error {
	pkgs := map[string]*goLines{}

	err := filepath.Walk(".", func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			switch path {
			case "vendor", ".git", binaryDir, "_examples", "magefiles":
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") {
			return nil
		}
		count, countErr := countLines(path)
		if countErr != nil {
			return nil
		}
		dir := filepath.ToSlash(filepath.Dir(path))
		if pkgs[dir] == nil {
			pkgs[dir] = &goLines{}
		}
		if strings.HasSuffix(path, "_test.go") {
			pkgs[dir].Test += count
		} else {
			pkgs[dir].Prod += count
		}
		return nil
	})
	if err != nil {
		return err
	}

	var total goLines
	for _, l := range pkgs {
		total.Prod += l.Prod
		total.Test += l.Test
	}

	docs := map[string]int{}
	for _, name := range statsDocs {
		words, err := countWordsInFile(name)
		if err != nil {
			continue
		}
		docs[name] = words
	}

	record := struct {
		Packages map[string]*goLines `json:"packages"`
		Total    goLines             `json:"total"`
		Docs     map[string]int      `json:"doc_words"`
	}{pkgs, total, docs}
	line, err := json.Marshal(record)
	if err != nil {
		return err
	}
	fmt.Println(string(line))

	dirs := make([]string, 0, len(pkgs))
	for dir := range pkgs {
		dirs = append(dirs, dir)
	}
	slices.Sort(dirs)
	for _, dir := range dirs {
		fmt.Printf("%-22s %5d prod %5d test\n", dir, pkgs[dir].Prod, pkgs[dir].Test)
	}
	return nil
}

func countLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	count := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		count++
	}
	return count, scanner.Err()
}

func countWordsInFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	count := 0
	inWord := false
	for _, r := range string(data) {
		if unicode.IsSpace(r) {
			inWord = false
		} else if !inWord {
			inWord = true
			count++
		}
	}
	return count, nil
}
