// terrain displays and edits the world map terrain table of the game's
// executable file.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"gitlab.com/stephen-fox/hookkit/exefile"
)

const (
	fileArg   = "f"
	regionArg = "r"
	typeArg   = "t"
	setArg    = "set"
	writeArg  = "w"
	helpArg   = "h"

	appName = "terrain"
	usage   = appName + `

DESCRIPTION
  Displays and edits the world map terrain table stored in the game's
  executable file. Edits are written to a new file. The original file
  is never modified.

USAGE
  ` + appName + ` -` + fileArg + ` EXE-PATH
  ` + appName + ` -` + fileArg + ` EXE-PATH -` + regionArg + ` REGION -` + typeArg + ` INDEX
  ` + appName + ` -` + fileArg + ` EXE-PATH -` + regionArg + ` REGION -` + typeArg + ` INDEX -` + setArg + ` TYPE -` + writeArg + ` OUTPUT-PATH

OPTIONS
`
)

func main() {
	log.SetFlags(0)

	err := mainWithError()
	if err != nil {
		log.Fatalln("fatal:", err)
	}
}

func mainWithError() error {
	exePath := flag.String(
		fileArg,
		"",
		"The executable file to read")
	region := flag.Int(
		regionArg,
		-1,
		fmt.Sprintf("The region index (0-%d)", exefile.NumTerrainRegions-1))
	terrainIndex := flag.Int(
		typeArg,
		-1,
		fmt.Sprintf("The terrain index within the region (0-%d)", exefile.TerrainTypesPerRegion-1))
	set := flag.Int(
		setArg,
		-1,
		fmt.Sprintf("Set the terrain type (0-%d)", exefile.MaxTerrainType))
	outputPath := flag.String(
		writeArg,
		"",
		"The file to write the modified executable to")
	help := flag.Bool(
		helpArg,
		false,
		"Display this information")

	flag.Parse()

	if *help {
		os.Stderr.WriteString(usage)
		flag.PrintDefaults()
		os.Exit(1)
	}

	if *exePath == "" {
		return fmt.Errorf("please specify the executable file path using '-%s'", fileArg)
	}

	image, err := os.ReadFile(*exePath)
	if err != nil {
		return err
	}

	exe, err := exefile.Parse(image)
	if err != nil {
		return fmt.Errorf("failed to parse %q - %w", *exePath, err)
	}

	if *region < 0 && *terrainIndex < 0 && *set < 0 {
		return printTable(os.Stdout, exe)
	}

	if *set < 0 {
		terrainType, err := exe.TerrainType(*region, *terrainIndex)
		if err != nil {
			return err
		}

		fmt.Println(terrainType)

		return nil
	}

	if *outputPath == "" {
		return fmt.Errorf("please specify an output file path using '-%s'", writeArg)
	}

	if *outputPath == *exePath {
		return errors.New("the output file cannot be the input file")
	}

	err = exe.SetTerrainType(*region, *terrainIndex, *set)
	if err != nil {
		return err
	}

	patched, err := exe.Bytes()
	if err != nil {
		return err
	}

	info, err := os.Stat(*exePath)
	if err != nil {
		return err
	}

	return os.WriteFile(*outputPath, patched, info.Mode().Perm())
}

func printTable(w io.Writer, exe *exefile.File) error {
	_, err := fmt.Fprintf(w, "terrain table at 0x%x:\n", exefile.TerrainTableOffset)
	if err != nil {
		return err
	}

	for i, region := range exe.TerrainRegions() {
		_, err := fmt.Fprintf(w, "region %2d: %2d %2d %2d %2d\n", i,
			region.TerrainTypes[0], region.TerrainTypes[1],
			region.TerrainTypes[2], region.TerrainTypes[3])
		if err != nil {
			return err
		}
	}

	return nil
}
