package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/thermetry/thermetry/internal/analysis"
	"github.com/thermetry/thermetry/internal/config"
	"github.com/thermetry/thermetry/internal/report"
	"github.com/thermetry/thermetry/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg := config.LoadOrDefault("")

	// Command line flags
	dataDir := flag.String("data", cfg.Storage.DataDir, "Data directory for saved numbers")
	load := flag.Bool("load", false, "Analyze previously saved numbers instead of prompting")
	save := flag.Bool("save", false, "Save the entered numbers for later runs")
	reportPath := flag.String("report", "", "Write the analysis report to this file (e.g. report.txt)")

	flag.Parse()

	store, err := storage.NewStore(*dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open data directory: %v\n", err)
		os.Exit(1)
	}

	var numbers []float64
	if *load {
		numbers = store.LoadNumbers()
		fmt.Printf("Loaded %d saved number(s) from %s\n", len(numbers), store.Path(storage.NumbersFile))
	} else {
		numbers = promptNumbers(bufio.NewScanner(os.Stdin))

		fmt.Println("You entered the following numbers:")
		for _, num := range numbers {
			fmt.Println(num)
		}
	}

	summary, err := analysis.SummarizeNumbers(numbers)
	if err != nil {
		fmt.Println("No numbers to analyze.")
		return
	}

	fmt.Println("\nStatistics:")
	fmt.Printf("Total: %v\n", summary.Total)
	fmt.Printf("Count: %d\n", summary.Count)
	fmt.Printf("Average: %.2f\n", summary.Average)
	fmt.Printf("Minimum: %v\n", summary.Min)
	fmt.Printf("Maximum: %v\n", summary.Max)

	if *save {
		path, err := store.SaveNumbers(numbers)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to save numbers: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\nNumbers saved to %s\n", path)
	}

	if *reportPath != "" {
		if err := writeReport(*reportPath, numbers, summary); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write report: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\nAnalysis report saved to %s\n", *reportPath)
	}
}

// promptNumbers collects the requested amount of numbers, re-prompting on
// anything that does not parse. EOF ends the session with what was entered
func promptNumbers(scanner *bufio.Scanner) []float64 {
	count := promptCount(scanner)

	numbers := make([]float64, 0, count)
	for i := 0; i < count; i++ {
		for {
			fmt.Printf("Enter number %d: ", i+1)
			line, ok := readLine(scanner)
			if !ok {
				return numbers
			}

			num, err := strconv.ParseFloat(strings.TrimSpace(line), 64)
			if err != nil {
				fmt.Println("Invalid input. Please enter a valid number.")
				continue
			}

			numbers = append(numbers, num)
			break
		}
	}

	return numbers
}

func promptCount(scanner *bufio.Scanner) int {
	fmt.Print("How many numbers would you like to enter?: ")
	for {
		line, ok := readLine(scanner)
		if !ok {
			return 0
		}

		count, err := strconv.Atoi(strings.TrimSpace(line))
		switch {
		case err != nil:
			fmt.Println("Invalid input. Please enter a whole number.")
		case count <= 0:
			fmt.Println("Please enter a number greater than 0.")
		default:
			return count
		}

		fmt.Print("Please enter a positive integer for how many numbers you'd like to enter: ")
	}
}

func readLine(scanner *bufio.Scanner) (string, bool) {
	if !scanner.Scan() {
		return "", false
	}
	return scanner.Text(), true
}

func writeReport(path string, numbers []float64, summary *analysis.NumberSummary) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := report.WriteNumbersText(f, time.Now(), numbers, summary); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
