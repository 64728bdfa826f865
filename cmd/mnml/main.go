// Command mnml inspects and edits MiniML documents.
package main

func main() {
	execute()
}
