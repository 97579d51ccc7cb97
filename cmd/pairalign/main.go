// 15 Mar 2024

package main

func main() {
	Execute()
}
