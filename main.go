package main

import "i18ncheck/cmd"

func main() {
	cmd.Execute()
}
